package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type parseRequest struct {
	Text string `json:"text" binding:"required"`
}

// TestParse godoc
// @Summary      Dry-run the signal parser
// @Description  Runs extraction and the acceptance filter against the given text without touching the store
// @Tags         signals
// @Accept       json
// @Produce      json
// @Param        request  body  parseRequest  true  "Message text to parse"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /test-parse [post]
func (h *Handler) TestParse(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.test-parse")
	defer span.End()

	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be JSON with a non-empty \"text\" field"})
		return
	}

	sig, err := h.signals.TestParse(ctx, req.Text)
	if err != nil {
		span.SetAttributes(attribute.String("parse.error", err.Error()))
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	span.SetAttributes(attribute.String("signal.pair", sig.Pair))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"signal":  sig,
	})
}
