// Package handlers implements the ingest API endpoints.
package handlers

import (
	"go.uber.org/zap"

	"github.com/kittyguard/harmreport/internal/chatlog"
)

type Handler struct {
	Svc *chatlog.Service
	Log *zap.Logger
}

func NewHandler(svc *chatlog.Service, log *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: log}
}
