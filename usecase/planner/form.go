package planner

import (
	"context"
	"sync"
	"time"

	"github.com/fastygo/studyplanner/domain"
)

// Submitter is the part of Repository the form commits through.
type Submitter interface {
	Create(ctx context.Context, draft domain.Draft) (domain.Activity, error)
	Update(ctx context.Context, id domain.ID, draft domain.Draft) (domain.Activity, error)
}

// FormData is the staged, typed content of the activity form.
type FormData struct {
	Title       string
	Description string
	Date        domain.CalendarDate
	Time        domain.Clock
	Subject     string
	Priority    domain.Priority
}

// Draft converts the staged values to their stored string forms.
func (d FormData) Draft() domain.Draft {
	draft := domain.Draft{
		Title:       d.Title,
		Description: d.Description,
		Time:        d.Time.String(),
		Subject:     d.Subject,
		Priority:    d.Priority,
	}
	if !d.Date.IsZero() {
		draft.Date = d.Date.String()
	}
	return draft
}

// Form holds at most one draft under edit. It does not persist anything
// itself; Submit hands the draft to the Submitter.
type Form struct {
	repo Submitter
	now  func() time.Time

	mu     sync.Mutex
	data   *FormData
	target domain.ID
}

func NewForm(repo Submitter, now func() time.Time) *Form {
	if now == nil {
		now = time.Now
	}
	return &Form{repo: repo, now: now}
}

// Open stages a blank draft for a new activity.
func (f *Form) Open() {
	now := f.now()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = &FormData{
		Date:     domain.DateOf(now),
		Time:     domain.ClockOf(now),
		Priority: domain.PriorityMedium,
	}
	f.target = ""
}

// Edit stages a copy of an existing activity.
func (f *Form) Edit(activity domain.Activity) error {
	date, err := domain.ToLocalDate(activity.Date)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid stored date", err)
	}
	clock, err := domain.ParseClock(activity.Time)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid stored time", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = &FormData{
		Title:       activity.Title,
		Description: activity.Description,
		Date:        date,
		Time:        clock,
		Subject:     activity.Subject,
		Priority:    activity.Priority,
	}
	f.target = activity.ID
	return nil
}

// Change edits the staged draft in place.
func (f *Form) Change(fn func(*FormData)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data == nil {
		return domain.ErrNoDraft
	}
	fn(f.data)
	return nil
}

// Data returns a copy of the staged draft and whether one is staged.
func (f *Form) Data() (FormData, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data == nil {
		return FormData{}, false
	}
	return *f.data, true
}

// Target returns the id being edited, if any.
func (f *Form) Target() (domain.ID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target, f.target != ""
}

// Submit commits the draft. Success clears the form; any failure keeps the
// draft so it can be corrected and submitted again.
func (f *Form) Submit(ctx context.Context) (domain.Activity, error) {
	f.mu.Lock()
	if f.data == nil {
		f.mu.Unlock()
		return domain.Activity{}, domain.ErrNoDraft
	}
	draft := f.data.Draft()
	target := f.target
	f.mu.Unlock()

	var (
		saved domain.Activity
		err   error
	)
	if target != "" {
		saved, err = f.repo.Update(ctx, target, draft)
	} else {
		saved, err = f.repo.Create(ctx, draft)
	}
	if err != nil {
		return domain.Activity{}, err
	}

	f.Reset()
	return saved, nil
}

// Reset discards the staged draft.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = nil
	f.target = ""
}

var _ Submitter = (*Repository)(nil)
