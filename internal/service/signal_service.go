package service

import (
	"context"
	"errors"
	"log"

	"senales-radar/internal/domain"
	"senales-radar/internal/signal"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Evaluator runs one raw message through extraction and filtering.
type Evaluator interface {
	Evaluate(raw string) signal.Outcome
}

// Store is the slice of the signal store the pipeline mutates and reads.
type Store interface {
	RecordOutcome(sig *domain.TradingSignal, reason domain.RejectionReason)
	Snapshot() ([]domain.TradingSignal, domain.Statistics)
}

var (
	ErrNoSignal     = errors.New("no signal found in message")
	ErrOTCRejected  = errors.New("OTC instruments are not accepted")
	ErrMarketClosed = errors.New("market is closed")
)

// IngestService is the ingestion pipeline: one inbound message in, at most
// one store mutation out.
type IngestService struct {
	tracer trace.Tracer
	engine Evaluator
	store  Store
}

func NewIngestService(tracer trace.Tracer, engine Evaluator, store Store) *IngestService {
	return &IngestService{
		tracer: tracer,
		engine: engine,
		store:  store,
	}
}

// Ingest processes one inbound chat message end to end. It never returns an
// error: malformed text is a normal drop, rejections are counted outcomes,
// and internal faults are absorbed by the engine. The store mutation for the
// message is applied atomically.
func (s *IngestService) Ingest(ctx context.Context, text string) {
	_, span := s.tracer.Start(ctx, "ingest-service.ingest")
	defer span.End()

	out := s.engine.Evaluate(text)
	s.store.RecordOutcome(out.Signal, out.StatsReason)

	if out.Signal != nil {
		span.SetAttributes(
			attribute.String("signal.pair", out.Signal.Pair),
			attribute.String("signal.direction", string(out.Signal.Direction)),
		)
		log.Printf("accepted signal: %s %s @ %s (%s)",
			out.Signal.Pair, out.Signal.Direction, out.Signal.EntryTime, out.Signal.Expiration)
		return
	}
	if out.StatsReason != domain.RejectionUnclassified {
		span.SetAttributes(attribute.String("signal.rejection", string(out.StatsReason)))
	}
}

// TestParse runs extraction and filtering against the given text without
// touching the store. The returned error explains the filter verdict or the
// extraction failure.
func (s *IngestService) TestParse(ctx context.Context, text string) (*domain.TradingSignal, error) {
	_, span := s.tracer.Start(ctx, "ingest-service.test-parse")
	defer span.End()

	out := s.engine.Evaluate(text)
	if out.Signal != nil {
		return out.Signal, nil
	}
	switch out.FilterReason {
	case domain.RejectionOTC:
		return nil, ErrOTCRejected
	case domain.RejectionMarketClosed:
		return nil, ErrMarketClosed
	}
	return nil, ErrNoSignal
}

// Snapshot exposes the store's read surface to the query layers.
func (s *IngestService) Snapshot() ([]domain.TradingSignal, domain.Statistics) {
	return s.store.Snapshot()
}
