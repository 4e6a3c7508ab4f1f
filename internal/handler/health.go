package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Returns service status, Telegram connectivity, and ingestion statistics
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.health")
	defer span.End()

	signals, stats := h.signals.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"connected":     h.connected(),
		"signals_count": len(signals),
		"statistics":    stats,
	})
}
