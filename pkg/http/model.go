package http

// ErrorResponse is the JSON error envelope for all failure responses.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message interface{} `json:"message,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"tickers"`
	Message string                 `json:"message,omitempty" example:"Tickers is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
