package bot

import (
	"context"
	"log"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	tele "gopkg.in/telebot.v3"
)

// Ingestor consumes raw message text from the chat stream.
type Ingestor interface {
	Ingest(ctx context.Context, text string)
}

// Listener subscribes to the target Telegram group and forwards every text
// message to the ingestion pipeline. Connection lifecycle and reconnection
// are telebot's problem; the listener only consumes delivered text.
type Listener struct {
	bot       *tele.Bot
	chatID    int64
	ingestor  Ingestor
	connected atomic.Bool
}

// StartListener creates the bot and begins long-polling in the background.
// With no token configured it returns a disconnected no-op listener so the
// query surface can still run (useful locally with /test-parse).
func StartListener(ingestor Ingestor) *Listener {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram listener startup")
		return &Listener{ingestor: ingestor}
	}

	chatID := int64(0)
	if v := os.Getenv("TARGET_CHAT_ID"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Fatalf("invalid TARGET_CHAT_ID %q: %v", v, err)
		}
		chatID = n
	} else {
		log.Println("Warning: TARGET_CHAT_ID not set, ingesting from all chats")
	}

	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	l := &Listener{bot: b, chatID: chatID, ingestor: ingestor}

	b.Handle(tele.OnText, func(c tele.Context) error {
		l.consume(chatOf(c), c.Text())
		return nil
	})
	b.Handle(tele.OnChannelPost, func(c tele.Context) error {
		l.consume(chatOf(c), c.Text())
		return nil
	})

	l.connected.Store(true)
	log.Println("Telegram listener started")
	go b.Start()
	return l
}

func chatOf(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return 0
}

// consume forwards one delivered message to the pipeline, dropping messages
// from chats other than the configured target.
func (l *Listener) consume(chatID int64, text string) {
	if l.chatID != 0 && chatID != l.chatID {
		return
	}
	if text == "" {
		return
	}
	l.ingestor.Ingest(context.Background(), text)
}

// Connected reports whether the listener is attached to Telegram. Surfaced
// on /health.
func (l *Listener) Connected() bool {
	return l != nil && l.connected.Load()
}

// Stop shuts the long poller down.
func (l *Listener) Stop() {
	if l.bot != nil {
		l.bot.Stop()
	}
	l.connected.Store(false)
}
