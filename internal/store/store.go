package store

import (
	"sync"

	"senales-radar/internal/domain"
)

// DefaultMaxSignals is the retention bound applied when no explicit capacity
// is configured.
const DefaultMaxSignals = 50

// SignalStore holds the accepted signals, newest first, capped at a fixed
// capacity, plus the ingestion counters. It is the only shared mutable state
// in the process: the ingestion pipeline writes it, the query surfaces read
// snapshots. All state dies with the process.
type SignalStore struct {
	mu         sync.RWMutex
	maxSignals int
	signals    []domain.TradingSignal

	received       uint64
	accepted       uint64
	rejectedOTC    uint64
	rejectedClosed uint64
}

func New(maxSignals int) *SignalStore {
	if maxSignals <= 0 {
		maxSignals = DefaultMaxSignals
	}
	return &SignalStore{
		maxSignals: maxSignals,
		signals:    make([]domain.TradingSignal, 0, maxSignals),
	}
}

// RecordReceived increments the received counter for one inbound message.
func (s *SignalStore) RecordReceived() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received++
}

// InsertAccepted prepends an accepted signal, evicting the oldest entry once
// the capacity bound is exceeded. The accepted counter is monotone even
// though the buffer evicts.
func (s *SignalStore) InsertAccepted(sig domain.TradingSignal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertAcceptedLocked(sig)
}

// RecordRejected increments the counter matching the reason. Unclassified
// messages touch no rejection counter.
func (s *SignalStore) RecordRejected(reason domain.RejectionReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordRejectedLocked(reason)
}

// RecordOutcome applies the full effect of one inbound message as a single
// critical section: the received counter plus either the insert or the
// rejection counter. Readers never observe the intermediate state where one
// counter moved and the other did not.
func (s *SignalStore) RecordOutcome(sig *domain.TradingSignal, reason domain.RejectionReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.received++
	if sig != nil {
		s.insertAcceptedLocked(*sig)
		return
	}
	s.recordRejectedLocked(reason)
}

func (s *SignalStore) insertAcceptedLocked(sig domain.TradingSignal) {
	s.accepted++
	s.signals = append([]domain.TradingSignal{sig}, s.signals...)
	if len(s.signals) > s.maxSignals {
		s.signals = s.signals[:s.maxSignals]
	}
}

func (s *SignalStore) recordRejectedLocked(reason domain.RejectionReason) {
	switch reason {
	case domain.RejectionOTC:
		s.rejectedOTC++
	case domain.RejectionMarketClosed:
		s.rejectedClosed++
	}
}

// Snapshot returns a copy of the current signal sequence (newest first) and
// counters. The copy is safe to hand to concurrent readers; mutating it does
// not touch store state.
func (s *SignalStore) Snapshot() ([]domain.TradingSignal, domain.Statistics) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	signals := make([]domain.TradingSignal, len(s.signals))
	copy(signals, s.signals)

	stats := domain.Statistics{
		TotalReceived:             s.received,
		TotalAccepted:             s.accepted,
		TotalRejectedOTC:          s.rejectedOTC,
		TotalRejectedMarketClosed: s.rejectedClosed,
	}
	if s.received > 0 {
		stats.AcceptanceRate = float64(s.accepted) / float64(s.received) * 100
	}
	return signals, stats
}
