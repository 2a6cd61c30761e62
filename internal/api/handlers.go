// Package api exposes the agent over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pazarglobal/agent/internal/category"
	"github.com/pazarglobal/agent/internal/engine"
	"github.com/pazarglobal/agent/internal/logging"
)

// Handler handles HTTP requests for the agent API.
type Handler struct {
	engine *engine.Engine
	logger logging.Logger
}

// NewHandler creates a new API handler.
func NewHandler(eng *engine.Engine, logger logging.Logger) *Handler {
	return &Handler{engine: eng, logger: logger}
}

// AgentRunRequest is the full conversation turn payload.
type AgentRunRequest struct {
	UserID              string   `json:"user_id"`
	Phone               string   `json:"phone"`
	Message             string   `json:"message" binding:"required"`
	ConversationHistory []string `json:"conversation_history"`
	MediaPaths          []string `json:"media_paths"`
	MediaType           string   `json:"media_type"`
	DraftListingID      string   `json:"draft_listing_id"`
	SessionToken        string   `json:"session_token"`
	UserContext         any      `json:"user_context"`
}

// WebchatMessageRequest is the slimmer payload the web widget sends.
type WebchatMessageRequest struct {
	UserID       string   `json:"user_id"`
	Message      string   `json:"message" binding:"required"`
	MediaPaths   []string `json:"media_paths"`
	SessionToken string   `json:"session_token"`
}

// MediaAnalyzeRequest carries uploaded media references for a draft.
type MediaAnalyzeRequest struct {
	UserID     string   `json:"user_id"`
	MediaPaths []string `json:"media_paths" binding:"required,min=1"`
}

// AgentRun handles POST /agent/run.
func (h *Handler) AgentRun(c *gin.Context) {
	var req AgentRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid agent run request", logging.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.runMessage(c, engine.Request{
		UserID:       req.UserID,
		Phone:        engine.NormalizePhone(req.Phone),
		Message:      req.Message,
		MediaPaths:   req.MediaPaths,
		DraftID:      req.DraftListingID,
		SessionToken: req.SessionToken,
	})
}

// WebchatMessage handles POST /webchat/message.
func (h *Handler) WebchatMessage(c *gin.Context) {
	var req WebchatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid webchat request", logging.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.runMessage(c, engine.Request{
		UserID:       req.UserID,
		Message:      req.Message,
		MediaPaths:   req.MediaPaths,
		SessionToken: req.SessionToken,
	})
}

func (h *Handler) runMessage(c *gin.Context, req engine.Request) {
	resp, err := h.engine.Run(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, engine.ErrUserRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("agent run failed",
			logging.String("user_id", req.UserID),
			logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// WebchatCategories handles GET /webchat/categories.
func (h *Handler) WebchatCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": category.Options})
}

// MediaAnalyze handles POST /webchat/media/analyze. Media references are
// attached to the user's active draft and acknowledged; vision analysis runs
// out of band.
func (h *Handler) MediaAnalyze(c *gin.Context) {
	var req MediaAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid media analyze request", logging.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.engine.AttachMedia(c.Request.Context(), req.UserID, req.MediaPaths)
	if err != nil {
		if errors.Is(err, engine.ErrUserRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("media attach failed",
			logging.String("user_id", req.UserID),
			logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":    fmt.Sprintf("✅ %d görsel alındı.\n\nİlan başlığını ve fiyatını yazarsanız taslağı tamamlayıp önizleme gönderebilirim.", len(req.MediaPaths)),
		"draft_id": resp,
	})
}

// HealthCheck handles GET /healthz.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
