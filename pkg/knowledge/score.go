package knowledge

import (
	"regexp"
	"strings"
)

const (
	// substringScore is awarded when the whole query appears verbatim.
	substringScore = 95.0
	// matchThreshold is the minimum score for a result to be returned.
	matchThreshold = 60.0
)

var tokenPattern = regexp.MustCompile(`[a-zA-Z0-9_-]+`)

// stopWords are ignored when scoring token overlap.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "from": true,
	"as": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "should": true, "could": true, "may": true, "might": true,
	"must": true, "can": true, "this": true, "that": true, "these": true,
	"those": true, "i": true, "you": true, "he": true, "she": true,
	"it": true, "we": true, "they": true, "what": true, "which": true,
	"who": true, "when": true, "where": true, "why": true, "how": true,
}

// score rates how well text matches query on a 0-100 scale. An exact
// substring match short-circuits high; otherwise the score is the fraction
// of query tokens found in the text, with prefix matches counting to absorb
// plural and inflection differences.
func score(query, text string) float64 {
	queryLower := strings.ToLower(query)
	textLower := strings.ToLower(text)

	if strings.Contains(textLower, queryLower) {
		return substringScore
	}

	raw := tokenPattern.FindAllString(queryLower, -1)
	queryTokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len(tok) < 3 || stopWords[tok] {
			continue
		}
		queryTokens = append(queryTokens, tok)
	}
	// A query of nothing but stop words falls back to its raw tokens.
	if len(queryTokens) == 0 {
		queryTokens = raw
	}
	if len(queryTokens) == 0 {
		return 0
	}

	textTokens := tokenPattern.FindAllString(textLower, -1)
	textSet := make(map[string]bool, len(textTokens))
	for _, tok := range textTokens {
		textSet[tok] = true
	}

	matched := 0
	for _, qt := range queryTokens {
		if textSet[qt] {
			matched++
			continue
		}
		// Prefix match on either side, for tokens long enough to be meaningful.
		if len(qt) >= 4 {
			for tt := range textSet {
				if len(tt) >= 4 && (strings.HasPrefix(tt, qt) || strings.HasPrefix(qt, tt)) {
					matched++
					break
				}
			}
		}
	}

	return 100.0 * float64(matched) / float64(len(queryTokens))
}
