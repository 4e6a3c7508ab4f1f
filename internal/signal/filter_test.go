package signal

import (
	"testing"
	"time"

	"senales-radar/internal/domain"
)

var (
	openInstant   = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) // Wednesday
	closedInstant = time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC) // Saturday
)

func TestAcceptRegularCandidate(t *testing.T) {
	cand := domain.SignalCandidate{
		Pair:       "EURGBP",
		Direction:  domain.DirectionPut,
		EntryTime:  "18:10",
		Expiration: "M5",
	}

	sig, reason := Accept(cand, "raw text", openInstant)
	if sig == nil {
		t.Fatalf("expected acceptance, got reason %s", reason)
	}
	if sig.MarketType != domain.MarketTypeRegular {
		t.Errorf("market type = %q, want Regular", sig.MarketType)
	}
	if sig.Pair != "EURGBP" || sig.Direction != domain.DirectionPut {
		t.Errorf("unexpected signal: %+v", sig)
	}
	if !sig.CreatedAt.Equal(openInstant) {
		t.Errorf("CreatedAt = %v, want ingestion instant %v", sig.CreatedAt, openInstant)
	}
	if sig.RawMessage != "raw text" {
		t.Errorf("raw message not retained: %q", sig.RawMessage)
	}
}

func TestAcceptRejectsOTCFirst(t *testing.T) {
	// OTC wins even when the market is also closed: rule order matters.
	cand := domain.SignalCandidate{Pair: "EURGBP", IsOTC: true}
	sig, reason := Accept(cand, "", closedInstant)
	if sig != nil || reason != domain.RejectionOTC {
		t.Errorf("got (%v, %s), want (nil, OTC)", sig, reason)
	}
}

func TestAcceptRejectsClosedMarket(t *testing.T) {
	cand := domain.SignalCandidate{Pair: "EURGBP", Direction: domain.DirectionCall}
	sig, reason := Accept(cand, "", closedInstant)
	if sig != nil || reason != domain.RejectionMarketClosed {
		t.Errorf("got (%v, %s), want (nil, MARKET_CLOSED)", sig, reason)
	}
}

// A future entry time does not save a signal ingested during closed hours;
// the gate looks at the ingestion instant only.
func TestAcceptEvaluatesIngestionInstantNotEntryTime(t *testing.T) {
	cand := domain.SignalCandidate{Pair: "EURUSD", EntryTime: "23:30"}

	if sig, _ := Accept(cand, "", time.Date(2025, 1, 3, 21, 59, 59, 0, time.UTC)); sig == nil {
		t.Error("ingested one second before the Friday close: want accepted")
	}
	if sig, reason := Accept(cand, "", time.Date(2025, 1, 3, 22, 0, 0, 0, time.UTC)); sig != nil || reason != domain.RejectionMarketClosed {
		t.Error("ingested at the Friday close: want MARKET_CLOSED")
	}
}

func TestClassifyRejection(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.RejectionReason
	}{
		{"• EURGBP-OTC - CALL 🟩 - 09:45", domain.RejectionOTC},
		{"• EURGBP - PUT 🟥 - 18:10", domain.RejectionMarketClosed},
		{"hello world", domain.RejectionUnclassified},
		// Case-sensitive on purpose: lowercase keywords do not count.
		{"a lowercase put here", domain.RejectionUnclassified},
	}
	for _, tc := range cases {
		if got := ClassifyRejection(tc.raw); got != tc.want {
			t.Errorf("ClassifyRejection(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

// The raw-text classification is independent of the filter verdict and may
// disagree with it. An OTC-suffixed message whose signal line fails pair
// extraction is still attributed to the OTC counter.
func TestClassifyRejectionDivergesFromFilter(t *testing.T) {
	raw := "CALL now on the usual-OTC instrument"

	if _, ok := Extract(raw); ok {
		t.Fatal("fixture must fail extraction (no 6-letter code)")
	}
	if got := ClassifyRejection(raw); got != domain.RejectionOTC {
		t.Errorf("ClassifyRejection = %s, want OTC attribution", got)
	}
}
