package dto

// ErrorResponse is the HTTP error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageResponse carries page metadata for simple admin listings.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
