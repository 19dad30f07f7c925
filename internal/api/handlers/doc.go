package handlers

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"connection refused"`
}
