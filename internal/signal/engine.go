package signal

import (
	"log"
	"time"

	"senales-radar/internal/domain"
)

// Outcome is the result of evaluating one raw message.
//
// Exactly one of two shapes occurs: Signal is non-nil and the message was
// accepted, or Signal is nil and StatsReason says which rejection counter the
// message belongs to (RejectionUnclassified when the text was not
// signal-shaped at all). FilterReason carries the acceptance filter's own
// verdict when a candidate was extracted and rejected; it is empty for
// messages that never produced a candidate and can differ from StatsReason,
// which is re-derived from the raw text.
type Outcome struct {
	Signal       *domain.TradingSignal
	FilterReason domain.RejectionReason
	StatsReason  domain.RejectionReason
}

// Engine composes extraction and filtering for the ingestion pipeline.
type Engine struct {
	now func() time.Time
}

// NewEngine returns an Engine. A nil clock defaults to time.Now; tests inject
// a fixed clock to pin market-hours behavior.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Evaluate runs one message through extraction and the acceptance filter.
// It never panics: an internal fault is logged and treated as the
// no-candidate outcome, so a single bad message cannot corrupt the process.
func (e *Engine) Evaluate(raw string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("signal engine: recovered while evaluating message: %v", r)
			out = Outcome{StatsReason: ClassifyRejection(raw)}
		}
	}()

	cand, ok := Extract(raw)
	if !ok {
		return Outcome{StatsReason: ClassifyRejection(raw)}
	}

	sig, reason := Accept(cand, raw, e.now())
	if sig == nil {
		return Outcome{
			FilterReason: reason,
			StatsReason:  ClassifyRejection(raw),
		}
	}
	return Outcome{Signal: sig}
}
