package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"senales-radar/internal/domain"
	"senales-radar/internal/signal"
	"senales-radar/internal/store"

	"go.opentelemetry.io/otel/trace"
)

var openClock = func() time.Time {
	return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) // Wednesday
}

func newTestService(now func() time.Time) (*IngestService, *store.SignalStore) {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	st := store.New(50)
	return NewIngestService(tracer, signal.NewEngine(now), st), st
}

func TestIngestAcceptedSignal(t *testing.T) {
	svc, st := newTestService(openClock)

	svc.Ingest(context.Background(), "• EURGBP - PUT 🟥 - 18:10\nCaducidad: 5 minutos (M5)")

	signals, stats := st.Snapshot()
	if len(signals) != 1 {
		t.Fatalf("len = %d, want 1", len(signals))
	}
	sig := signals[0]
	if sig.Pair != "EURGBP" || sig.MarketType != "Regular" || sig.Direction != domain.DirectionPut ||
		sig.EntryTime != "18:10" || sig.Expiration != "M5" {
		t.Errorf("unexpected signal: %+v", sig)
	}
	if stats.TotalReceived != 1 || stats.TotalAccepted != 1 {
		t.Errorf("stats = %+v, want received 1 accepted 1", stats)
	}
}

func TestIngestOTCRejection(t *testing.T) {
	svc, st := newTestService(openClock)

	svc.Ingest(context.Background(), "• EURGBP-OTC - CALL 🟩 - 09:45")

	signals, stats := st.Snapshot()
	if len(signals) != 0 {
		t.Fatal("OTC signal must not be stored")
	}
	if stats.TotalReceived != 1 || stats.TotalAccepted != 0 || stats.TotalRejectedOTC != 1 {
		t.Errorf("stats = %+v, want received 1, OTC 1", stats)
	}
}

func TestIngestNonSignalText(t *testing.T) {
	svc, st := newTestService(openClock)

	svc.Ingest(context.Background(), "hello world")

	_, stats := st.Snapshot()
	if stats.TotalReceived != 1 {
		t.Errorf("received = %d, want 1", stats.TotalReceived)
	}
	if stats.TotalAccepted != 0 || stats.TotalRejectedOTC != 0 || stats.TotalRejectedMarketClosed != 0 {
		t.Errorf("no other counter may move: %+v", stats)
	}
}

func TestIngestCountersAddUp(t *testing.T) {
	svc, st := newTestService(openClock)
	messages := []string{
		"• EURGBP - PUT - 18:10",
		"• EURGBP-OTC - CALL - 09:45",
		"hello world",
		"• AUDCAD - CALL - 11:00",
	}
	for _, msg := range messages {
		svc.Ingest(context.Background(), msg)
	}

	_, stats := st.Snapshot()
	if stats.TotalReceived != 4 {
		t.Fatalf("received = %d, want 4", stats.TotalReceived)
	}
	classified := stats.TotalAccepted + stats.TotalRejectedOTC + stats.TotalRejectedMarketClosed
	if classified != 3 {
		t.Errorf("classified = %d, want 3 (one message was not signal-shaped)", classified)
	}
	if stats.TotalAccepted > stats.TotalReceived {
		t.Error("accepted exceeded received")
	}
}

func TestTestParseDoesNotTouchStore(t *testing.T) {
	svc, st := newTestService(openClock)

	sig, err := svc.TestParse(context.Background(), "• EURGBP - PUT - 18:10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Pair != "EURGBP" {
		t.Errorf("pair = %q, want EURGBP", sig.Pair)
	}

	signals, stats := st.Snapshot()
	if len(signals) != 0 || stats.TotalReceived != 0 {
		t.Errorf("test-parse mutated the store: %d signals, %+v", len(signals), stats)
	}
}

func TestTestParseErrors(t *testing.T) {
	svc, _ := newTestService(openClock)
	ctx := context.Background()

	if _, err := svc.TestParse(ctx, "• EURGBP-OTC - CALL - 09:45"); !errors.Is(err, ErrOTCRejected) {
		t.Errorf("OTC: err = %v, want ErrOTCRejected", err)
	}
	if _, err := svc.TestParse(ctx, "hello world"); !errors.Is(err, ErrNoSignal) {
		t.Errorf("no signal: err = %v, want ErrNoSignal", err)
	}

	closedClock := func() time.Time {
		return time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC) // Saturday
	}
	svcClosed, _ := newTestService(closedClock)
	if _, err := svcClosed.TestParse(ctx, "• EURGBP - CALL - 09:45"); !errors.Is(err, ErrMarketClosed) {
		t.Errorf("closed: err = %v, want ErrMarketClosed", err)
	}
}
