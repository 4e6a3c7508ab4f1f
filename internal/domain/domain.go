package domain

import "time"

type Direction string

const (
	DirectionCall    Direction = "CALL"
	DirectionPut     Direction = "PUT"
	DirectionUnknown Direction = "UNKNOWN"
)

// MarketTypeRegular is the only market type ever persisted. OTC candidates
// are rejected before they reach the store.
const MarketTypeRegular = "Regular"

type RejectionReason string

const (
	RejectionOTC          RejectionReason = "OTC"
	RejectionMarketClosed RejectionReason = "MARKET_CLOSED"
	// RejectionUnclassified marks messages that were not signal-shaped at all;
	// no rejection counter is incremented for them.
	RejectionUnclassified RejectionReason = "UNCLASSIFIED"
)

// SignalCandidate is the intermediate result of field extraction, before the
// acceptance filter has run.
type SignalCandidate struct {
	Pair       string
	IsOTC      bool
	Direction  Direction
	EntryTime  string // "HH:MM", or "N/A" when the signal line carries no time
	Expiration string // "M<minutes>", defaults to "M5"
}

// TradingSignal is an accepted signal as stored and served. Immutable after
// creation.
type TradingSignal struct {
	Pair       string    `json:"pair"`
	MarketType string    `json:"market_type"`
	Direction  Direction `json:"direction"`
	EntryTime  string    `json:"entry_time"`
	Expiration string    `json:"expiration"`
	CreatedAt  time.Time `json:"created_at"`
	RawMessage string    `json:"raw_message"`
}

// Statistics is a point-in-time copy of the ingestion counters.
type Statistics struct {
	TotalReceived             uint64  `json:"total_received"`
	TotalAccepted             uint64  `json:"total_accepted"`
	TotalRejectedOTC          uint64  `json:"total_rejected_otc"`
	TotalRejectedMarketClosed uint64  `json:"total_rejected_market_closed"`
	AcceptanceRate            float64 `json:"acceptance_rate"`
}
