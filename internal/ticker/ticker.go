// Package ticker extracts probable stock/ETF ticker symbols from free text.
// A returned symbol is a candidate only; it is confirmed downstream when the
// market data provider recognizes it.
package ticker

import (
	"regexp"
	"strings"
)

// Lexical shape of a ticker: optional $ prefix, 1-6 uppercase letters,
// optional .XX class suffix (e.g. BRK.A). Matching is case-sensitive so
// ordinary prose does not qualify; only tokens the user wrote in caps do.
// Word boundaries are checked separately since the token must not touch
// another letter or digit.
var tickerRe = regexp.MustCompile(`\$?[A-Z]{1,6}(?:\.[A-Z]{1,2})?`)

// Common English words that match the ticker shape but never mean one.
var blacklist = map[string]struct{}{
	"I": {}, "A": {}, "AN": {}, "THE": {}, "AND": {}, "OR": {},
}

// Extract returns up to maxN candidate symbols in first-seen order,
// deduplicated and filtered through the blacklist.
func Extract(text string, maxN int) []string {
	if text == "" || maxN <= 0 {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	for _, loc := range tickerRe.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && isWordByte(text[start-1]) {
			continue
		}
		if end < len(text) && isWordByte(text[end]) {
			continue
		}
		sym := strings.TrimPrefix(text[start:end], "$")
		if _, ok := blacklist[sym]; ok {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
		if len(out) >= maxN {
			break
		}
	}
	return out
}

func isWordByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
