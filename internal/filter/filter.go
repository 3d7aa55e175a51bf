package filter

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"discoprowl/internal/config"
	"discoprowl/internal/indexer"
)

// Reason names the first check a hit failed.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonNotGame      Reason = "not_game"
	ReasonKeyword      Reason = "disallowed_keyword"
	ReasonMalformedAge Reason = "malformed_age"
	ReasonTooOld       Reason = "too_old"
	ReasonNoWordMatch  Reason = "no_word_match"
)

// Rules holds the filter settings. Keywords must already be lowercase.
type Rules struct {
	DisallowedKeywords []string
	MaxAgeDays         int
	MaxResults         int
}

// RulesFromConfig builds Rules from the [filter] section.
func RulesFromConfig(cfg *config.Config) Rules {
	if cfg == nil {
		return Rules{}
	}
	return Rules{
		DisallowedKeywords: append([]string(nil), cfg.Filter.DisallowedKeywords...),
		MaxAgeDays:         cfg.Filter.MaxAgeDays,
		MaxResults:         cfg.Filter.MaxResults,
	}
}

// Verdict is the outcome of evaluating one hit.
type Verdict struct {
	Passed bool
	Reason Reason
	// Detail carries the offending keyword or age for display.
	Detail string
}

// Matcher tests whether a file name contains a query as a whole word. Word
// characters are Unicode letters, numbers, and the underscore.
type Matcher struct {
	query string
}

// NewMatcher normalizes query for case-insensitive matching.
func NewMatcher(query string) *Matcher {
	return &Matcher{query: strings.ToLower(strings.TrimSpace(query))}
}

// Match reports whether name (any case) contains the query as a whole word.
// Every occurrence is tried, including overlapping ones.
func (m *Matcher) Match(name string) bool {
	if m.query == "" {
		return false
	}
	lowered := strings.ToLower(name)
	for offset := 0; offset < len(lowered); {
		idx := strings.Index(lowered[offset:], m.query)
		if idx < 0 {
			return false
		}
		start := offset + idx
		if wordBoundary(lowered, start) && wordBoundary(lowered, start+len(m.query)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(lowered[start:])
		offset = start + size
	}
	return false
}

// wordBoundary reports whether byte offset i in s separates a word character
// from a non-word character. The string edges count as non-word.
func wordBoundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// PassesFilters reports whether hit survives every rule for query.
func PassesFilters(hit indexer.Hit, query string, rules Rules) bool {
	return Evaluate(hit, NewMatcher(query), rules).Passed
}

// Evaluate applies the checks in order and stops at the first failure:
// game category, disallowed keyword, age, whole-word match.
func Evaluate(hit indexer.Hit, matcher *Matcher, rules Rules) Verdict {
	if !IsGame(hit) {
		return Verdict{Reason: ReasonNotGame}
	}

	name := strings.ToLower(hit.FileName)
	for _, kw := range rules.DisallowedKeywords {
		if kw != "" && strings.Contains(name, kw) {
			return Verdict{Reason: ReasonKeyword, Detail: kw}
		}
	}

	age, ok := hit.Age.Int()
	if !ok {
		return Verdict{Reason: ReasonMalformedAge, Detail: hit.Age.String()}
	}
	if age > rules.MaxAgeDays {
		return Verdict{Reason: ReasonTooOld, Detail: fmt.Sprintf("%d > %d days", age, rules.MaxAgeDays)}
	}

	if !matcher.Match(name) {
		return Verdict{Reason: ReasonNoWordMatch, Detail: matcher.query}
	}
	return Verdict{Passed: true}
}

// Apply returns the hits that pass, preserving indexer order.
func Apply(hits []indexer.Hit, query string, rules Rules) []indexer.Hit {
	matcher := NewMatcher(query)
	passed := make([]indexer.Hit, 0, len(hits))
	for _, hit := range hits {
		if Evaluate(hit, matcher, rules).Passed {
			passed = append(passed, hit)
		}
	}
	return passed
}
