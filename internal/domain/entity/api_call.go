package entity

import "time"

// APICall records one request made to the Bookkeeping API
type APICall struct {
	ID            int64     `json:"id"`
	CorrelationID string    `json:"correlation_id"`
	Endpoint      string    `json:"endpoint"`
	Method        string    `json:"method"`
	RequestBody   string    `json:"request_body"`
	ResponseBody  string    `json:"response_body"`
	StatusCode    int       `json:"status_code"`
	Duration      int64     `json:"duration_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

// Succeeded reports whether the API answered with a 2xx status
func (c *APICall) Succeeded() bool {
	return c.StatusCode >= 200 && c.StatusCode < 300
}

// FileUpload represents a file to be uploaded
type FileUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}
