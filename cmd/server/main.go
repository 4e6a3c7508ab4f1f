package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"strconv"
	"syscall"
	"time"

	"senales-radar/internal/bot"
	"senales-radar/internal/config"
	"senales-radar/internal/handler"
	"senales-radar/internal/service"
	signalengine "senales-radar/internal/signal"
	"senales-radar/internal/store"
	"senales-radar/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "senales-radar/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initTracerFunc         = tracing.InitTracer
	newStoreFunc           = store.New
	newIngestServiceFunc   = service.NewIngestService
	startListenerFunc      = bot.StartListener
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Señales Radar API
// @version         1.0
// @description     Telegram trading-signal scraper with an HTTP query surface.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Build the ingestion pipeline
	signalStore := newStoreFunc(cfg.MaxSignals)
	ingestService := newIngestServiceFunc(tracer, signalengine.NewEngine(nil), signalStore)

	// Start the Telegram listener
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	if cfg.TargetChatID != 0 {
		os.Setenv("TARGET_CHAT_ID", strconv.FormatInt(cfg.TargetChatID, 10))
	}
	listener := startListenerFunc(ingestService)

	// Create handlers and routes
	h := newHandlerFunc(tracer, ingestService, listener.Connected, cfg.APIKey)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("senales-radar"))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()
	listener.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
