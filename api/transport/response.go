package transport

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every response of the activity service. The planner's
// remote store reads Data on success and Error otherwise.
type Envelope struct {
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
	Meta   any    `json:"meta,omitempty"`
}

// ListMeta accompanies activity listings.
type ListMeta struct {
	Count int `json:"count"`
}

// FieldsMeta names the draft fields that failed validation.
type FieldsMeta struct {
	Fields []string `json:"fields"`
}

func NewSuccess(data, meta any) Envelope {
	return Envelope{Status: StatusSuccess, Data: data, Meta: meta}
}

func NewError(code, message string, meta any) Envelope {
	return Envelope{Status: StatusError, Code: code, Error: message, Meta: meta}
}
