package signal

import (
	"strings"
	"time"

	"senales-radar/internal/domain"
)

// Accept applies the acceptance rules to an extracted candidate, in order:
// OTC instruments are categorically excluded (their quotes are synthetic and
// broker-specific), then the market-hours gate is checked at the ingestion
// instant, not at the signal's stated entry time. On success it returns the
// TradingSignal to persist; on rejection the signal is nil and the reason is
// set.
func Accept(cand domain.SignalCandidate, raw string, now time.Time) (*domain.TradingSignal, domain.RejectionReason) {
	if cand.IsOTC {
		return nil, domain.RejectionOTC
	}
	if !MarketOpen(cand.Pair, now) {
		return nil, domain.RejectionMarketClosed
	}
	return &domain.TradingSignal{
		Pair:       cand.Pair,
		MarketType: domain.MarketTypeRegular,
		Direction:  cand.Direction,
		EntryTime:  cand.EntryTime,
		Expiration: cand.Expiration,
		CreatedAt:  now,
		RawMessage: raw,
	}, ""
}

// ClassifyRejection attributes a dropped message to a rejection counter using
// the raw text alone. It is computed independently of the filter verdict so
// that counters can be updated even when extraction produced no candidate;
// on rare inputs (an OTC message that also fails extraction, say) it can
// disagree with the filter's true reason. That divergence is deliberate and
// matches observed behavior.
func ClassifyRejection(raw string) domain.RejectionReason {
	if strings.Contains(raw, "-OTC") {
		return domain.RejectionOTC
	}
	if strings.Contains(raw, "CALL") || strings.Contains(raw, "PUT") {
		return domain.RejectionMarketClosed
	}
	return domain.RejectionUnclassified
}
