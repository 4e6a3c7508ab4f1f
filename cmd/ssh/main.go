package main

import (
	"context"
	"errors"
	"log"
	"net"
	"os"
	ossignal "os/signal"
	"strconv"
	"syscall"
	"time"

	"senales-radar/internal/bot"
	"senales-radar/internal/config"
	"senales-radar/internal/service"
	signalengine "senales-radar/internal/signal"
	"senales-radar/internal/store"
	"senales-radar/internal/tui"
	"senales-radar/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	gossh "golang.org/x/crypto/ssh"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initTracerFunc       = tracing.InitTracer
	newStoreFunc         = store.New
	newIngestServiceFunc = service.NewIngestService
	startListenerFunc    = bot.StartListener
	newWishServerFunc    = wish.NewServer
	setupSignalNotify    = ossignal.Notify
	waitForSignalFunc    = func(quit <-chan os.Signal) { <-quit }
)

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

	teaHandler := func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		return tui.NewModel(signalStore), []tea.ProgramOption{tea.WithAltScreen()}
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSHBind, strconv.Itoa(cfg.SSHPort))),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler),
			logging.Middleware(),
		),
	}
	if cfg.SSHAuthorizedKeys != "" {
		auth, err := authorizedKeysHandler(cfg.SSHAuthorizedKeys)
		if err != nil {
			log.Fatalf("failed to load authorized keys: %v", err)
		}
		opts = append(opts, wish.WithPublicKeyAuth(auth))
	}

	srv, err := newWishServerFunc(opts...)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	go func() {
		log.Printf("SSH dashboard listening on %s:%d", cfg.SSHBind, cfg.SSHPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("ssh listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()
	listener.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Printf("ssh shutdown: %v", err)
	}

	log.Println("SSH server exiting")
}

// authorizedKeysHandler reads an authorized_keys file and admits only the
// keys it lists.
func authorizedKeysHandler(path string) (ssh.PublicKeyHandler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var keys []gossh.PublicKey
	rest := data
	for len(rest) > 0 {
		key, _, _, next, err := gossh.ParseAuthorizedKey(rest)
		if err != nil {
			break
		}
		keys = append(keys, key)
		rest = next
	}

	return func(ctx ssh.Context, key ssh.PublicKey) bool {
		for _, authorized := range keys {
			if ssh.KeysEqual(key, authorized) {
				return true
			}
		}
		return false
	}, nil
}
