package handler

import (
	"prepgogo/backend/internal/ai"
	"prepgogo/backend/internal/auth"
	"prepgogo/backend/internal/interviewhub"
	"prepgogo/backend/internal/storage"
)

// Handler bundles the dependencies the HTTP and WebSocket endpoints need.
type Handler struct {
	Hub     *interviewhub.CoordinatorService
	Storage storage.Storage
	Auth    *auth.Service
	AI      ai.Generator
}

func NewHandler(hub *interviewhub.CoordinatorService, s storage.Storage, authSvc *auth.Service, gen ai.Generator) *Handler {
	return &Handler{Hub: hub, Storage: s, Auth: authSvc, AI: gen}
}
