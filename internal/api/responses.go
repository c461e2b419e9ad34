// Package api holds the response envelopes shared by every handler so
// the swagger definitions stay consistent across domains.
package api

type ErrorResponse struct {
	Error string `json:"error" example:"wallet not found"`
}

type MessageResponse struct {
	Message string `json:"message" example:"wallet deleted"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
