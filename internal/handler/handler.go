package handler

import (
	"senales-radar/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer    trace.Tracer
	signals   *service.IngestService
	connected func() bool
	apiKey    string
}

func New(tracer trace.Tracer, signals *service.IngestService, connected func() bool, apiKey string) *Handler {
	if connected == nil {
		connected = func() bool { return false }
	}
	return &Handler{
		tracer:    tracer,
		signals:   signals,
		connected: connected,
		apiKey:    apiKey,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Dashboard)
	r.GET("/health", h.Health)
	r.GET("/signals", h.GetSignals)
	r.POST("/test-parse", APIKeyAuth(h.apiKey), h.TestParse)
}
