package handler

import (
	"net/http"

	"senales-radar/web"

	"github.com/gin-gonic/gin"
)

// Dashboard godoc
// @Summary      Signals dashboard
// @Description  Serves the HTML dashboard that polls /signals and /health
// @Tags         dashboard
// @Produce      html
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) Dashboard(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}
