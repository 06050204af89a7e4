package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Priority ranks how urgent an activity is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Label returns the pt-BR name shown next to an activity.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "Alta"
	case PriorityMedium:
		return "Média"
	default:
		return "Baixa"
	}
}

// Color returns the badge colour for the priority.
func (p Priority) Color() string {
	switch p {
	case PriorityHigh:
		return "#ef4444"
	case PriorityMedium:
		return "#f59e0b"
	case PriorityLow:
		return "#10b981"
	default:
		return "#6b7280"
	}
}

// ID identifies an activity. Older local blobs stored numeric ids, so both
// JSON numbers and strings decode into it.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Activity is a scheduled student task or event.
type Activity struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Subject     string   `json:"subject"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
}

// SortKey orders activities chronologically; the ISO layouts make the
// lexicographic order equal to the calendar order.
func (a Activity) SortKey() string {
	return a.Date + "T" + a.Time
}

func (a *Activity) IsCompleted() bool {
	return a != nil && a.Completed
}

// Draft is an uncommitted activity payload. It never carries an id.
type Draft struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string   `json:"time" validate:"required,datetime=15:04"`
	Subject     string   `json:"subject" validate:"required"`
	Priority    Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	Completed   *bool    `json:"completed,omitempty"`
}

// Normalize trims text fields, zero-pads the time to HH:MM and applies the
// default priority.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Date = strings.TrimSpace(d.Date)
	d.Time = strings.TrimSpace(d.Time)
	if clock, err := ParseClock(d.Time); err == nil {
		d.Time = clock.String()
	}
	d.Subject = strings.TrimSpace(d.Subject)
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	return d
}

// NewActivity commits the draft under the given id. New activities always
// start out incomplete.
func (d Draft) NewActivity(id ID) Activity {
	return Activity{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date,
		Time:        d.Time,
		Subject:     d.Subject,
		Priority:    d.Priority,
		Completed:   false,
	}
}

// Apply replaces every field of base except the id. Completed is kept
// unless the draft sets it.
func (d Draft) Apply(base Activity) Activity {
	out := d.NewActivity(base.ID)
	out.Completed = base.Completed
	if d.Completed != nil {
		out.Completed = *d.Completed
	}
	return out
}

// DraftOf copies the editable fields of an activity into a draft.
func DraftOf(a Activity) Draft {
	completed := a.Completed
	return Draft{
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date,
		Time:        a.Time,
		Subject:     a.Subject,
		Priority:    a.Priority,
		Completed:   &completed,
	}
}
