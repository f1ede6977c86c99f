// Package httpapi wires the gin router for the ingest service.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kittyguard/harmreport/internal/chatlog"
	"github.com/kittyguard/harmreport/internal/common"
	"github.com/kittyguard/harmreport/internal/httpapi/handlers"
	"github.com/kittyguard/harmreport/internal/httpapi/middleware"
)

func NewRouter(svc *chatlog.Service, apiKey string, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(svc, log)

	r.GET("/ping", h.Ping)

	authed := r.Group("/")
	authed.Use(middleware.APIKeyRequired(apiKey))
	authed.POST("/process_chat_data", h.ProcessChatData)
	authed.GET("/jobs/:id", h.GetJob)

	return r
}
