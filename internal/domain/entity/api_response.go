package entity

// APIResponse is the body every gateway endpoint answers with
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func NewSuccessResponse(data interface{}, message string) *APIResponse {
	return &APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewPagedResponse is NewSuccessResponse with pagination metadata attached
func NewPagedResponse(data interface{}, meta interface{}, message string) *APIResponse {
	resp := NewSuccessResponse(data, message)
	resp.Meta = meta
	return resp
}

func NewErrorResponse(code string, message string, details ...string) *APIResponse {
	return &APIResponse{
		Success: false,
		Message: message,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
