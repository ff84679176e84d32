package handlers

import (
	"github.com/soltixdb/tsfunc/internal/logging"
	"github.com/soltixdb/tsfunc/internal/services"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Handler contains all HTTP handlers
type Handler struct {
	logger           *logging.Logger
	transformService *services.TransformService
}

// New creates a new handler instance
func New(logger *logging.Logger, transformService *services.TransformService) *Handler {
	return &Handler{
		logger:           logger,
		transformService: transformService,
	}
}
