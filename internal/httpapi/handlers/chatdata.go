package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kittyguard/harmreport/internal/chatlog"
	"github.com/kittyguard/harmreport/internal/common"
)

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true})
}

// ProcessChatData appends one processed chat text for a user and reports
// whether a generation job was triggered.
func (h *Handler) ProcessChatData(c *gin.Context) {
	var req chatlog.ProcessedTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	entry, job, err := h.Svc.Ingest(c.Request.Context(), req)
	if err != nil {
		h.Log.Error("ingest failed", zap.Int("user_id", req.UserID), zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to store chat data")
		return
	}

	message := fmt.Sprintf("Chat data logged for user %d.", req.UserID)
	resp := gin.H{
		"entry_id": entry.ID,
		"message":  message,
	}
	if job != nil {
		resp["message"] = message + " Report generation triggered."
		resp["job_id"] = job.ID
	}
	common.OK(c, resp)
}

// GetJob reports a generation job's status and, once succeeded, its artifact
// path.
func (h *Handler) GetJob(c *gin.Context) {
	job, err := h.Svc.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40004, "job not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to load job")
		return
	}
	common.OK(c, job)
}
