// Package handler holds the gin handlers of the API.
package handler

import "files-manager/backend/service"

// Handler bundles the injected collaborators the endpoints need.
type Handler struct {
	gate  *service.AuthGate
	files *service.FileManager
}

func New(gate *service.AuthGate, files *service.FileManager) *Handler {
	return &Handler{gate: gate, files: files}
}
