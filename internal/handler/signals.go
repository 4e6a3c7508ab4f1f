package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetSignals godoc
// @Summary      List accepted trading signals
// @Description  Returns the retained signals, newest first, with the current count
// @Tags         signals
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /signals [get]
func (h *Handler) GetSignals(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-signals")
	defer span.End()

	signals, _ := h.signals.Snapshot()
	span.SetAttributes(attribute.Int("signals.count", len(signals)))

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"count":   len(signals),
		"signals": signals,
	})
}
