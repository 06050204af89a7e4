package transport

import "github.com/fastygo/studyplanner/domain"

// ActivityRequest is the body of POST and PUT on the activity resource. An
// id in the body is ignored; PUT takes it from the path.
type ActivityRequest struct {
	ID          domain.ID       `json:"id,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Subject     string          `json:"subject"`
	Priority    domain.Priority `json:"priority"`
	Completed   *bool           `json:"completed"`
}

func (r ActivityRequest) Draft() domain.Draft {
	return domain.Draft{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		Subject:     r.Subject,
		Priority:    r.Priority,
		Completed:   r.Completed,
	}
}
