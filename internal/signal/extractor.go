package signal

import (
	"regexp"
	"strings"

	"senales-radar/internal/domain"
)

const defaultExpiration = "M5"

var (
	directionRe  = regexp.MustCompile(`(?i)(CALL|PUT)`)
	pairRe       = regexp.MustCompile(`([A-Z]{6})(-OTC)?`)
	entryTimeRe  = regexp.MustCompile(`\d{1,2}:\d{2}`)
	expirationRe = regexp.MustCompile(`M\d+`)
	minutesRe    = regexp.MustCompile(`(?i)(\d+)\s*minutos?`)
)

// lineRule selects one line of interest out of a multi-line message. Rules
// scan every line and keep the last match: broadcast messages put the
// authoritative signal line after preamble text, so later lines win.
type lineRule struct {
	field string
	match func(line string) bool
}

var lineRules = []lineRule{
	{field: "signal", match: directionRe.MatchString},
	{field: "expiration", match: isExpirationLine},
}

func isExpirationLine(line string) bool {
	if strings.Contains(strings.ToLower(line), "caducidad") {
		return true
	}
	return strings.Contains(line, "M5") ||
		strings.Contains(line, "M1") ||
		strings.Contains(line, "M15")
}

// Extract pulls a SignalCandidate out of a raw chat message. The second
// return value is false when the message has no line with a direction
// keyword, or when the signal line carries no six-letter instrument code.
func Extract(raw string) (domain.SignalCandidate, bool) {
	lines := strings.Split(raw, "\n")

	matched := make(map[string]string, len(lineRules))
	for _, line := range lines {
		for _, rule := range lineRules {
			if rule.match(line) {
				matched[rule.field] = line
			}
		}
	}

	signalLine, ok := matched["signal"]
	if !ok {
		return domain.SignalCandidate{}, false
	}

	pair := pairRe.FindStringSubmatch(signalLine)
	if pair == nil {
		return domain.SignalCandidate{}, false
	}

	return domain.SignalCandidate{
		Pair:       pair[1],
		IsOTC:      pair[2] != "",
		Direction:  extractDirection(signalLine),
		EntryTime:  extractEntryTime(signalLine),
		Expiration: extractExpiration(matched["expiration"]),
	}, true
}

func extractDirection(line string) domain.Direction {
	switch strings.ToUpper(directionRe.FindString(line)) {
	case "CALL":
		return domain.DirectionCall
	case "PUT":
		return domain.DirectionPut
	}
	// Unreachable for lines selected by the signal rule; kept as a default
	// for direct callers.
	return domain.DirectionUnknown
}

func extractEntryTime(line string) string {
	if m := entryTimeRe.FindString(line); m != "" {
		return m
	}
	return "N/A"
}

// extractExpiration reads the expiration line, if any. An explicit M-token
// ("M5", "M15") is used verbatim; otherwise a Spanish "N minutos" phrase is
// normalized to M<N>. Anything else falls back to the M5 default.
func extractExpiration(line string) string {
	if line == "" {
		return defaultExpiration
	}
	if m := expirationRe.FindString(line); m != "" {
		return m
	}
	if m := minutesRe.FindStringSubmatch(line); m != nil {
		return "M" + m[1]
	}
	return defaultExpiration
}
