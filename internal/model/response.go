package model

// ErrorResponse is the error envelope every handler returns on failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse wraps mutation results with a human-readable message.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(message, details string) ErrorResponse {
	return ErrorResponse{Error: message, Details: details}
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(message string, data any) SuccessResponse {
	return SuccessResponse{Message: message, Data: data}
}

// ClientPage is one page of a filtered client listing.
type ClientPage struct {
	Clients  []*Client `json:"clients"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}
