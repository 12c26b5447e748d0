package http

// APIResponse is the envelope every endpoint writes. Status carries the
// logical status code; the transport-level code is always 200 so that
// clients can rely on a single decode path.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError describes a single failed field check.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"spot"`
	Message string                 `json:"message,omitempty" example:"Spot is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
