package dto

// Envelope is the result shape shared by the HTTP API, the CLI and message replies.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Total   *int   `json:"total,omitempty"`
	Date    string `json:"date,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(data any, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

// List wraps items and reports their count in total.
func List[T any](items []T) Envelope {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return Envelope{Success: true, Data: items, Total: &n}
}

func Failure(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
