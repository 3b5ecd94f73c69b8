// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package route classifies free-text library queries into intents and
// extracts the search topic. Queries mix English and Hindi; both the
// keyword lists and the connector-word regex are bilingual. The matching is
// deliberately heuristic — fixed substring lists checked in priority order,
// no NLP — because that is the observable contract of the assistant.
package route

import (
	"regexp"
	"strings"

	"github.com/mashutosh934755/bennett-ashu-ai/pkg/types"
)

// bookPhrases trigger a book-metadata search. Checked first: "find books on
// machine learning" must not fall through to the generic article keywords.
var bookPhrases = []string{
	"find books on",
	"find book on",
}

// finePhrases and checkoutPhrases trigger personal-account lookups. They are
// checked before the article keywords so "my books" is an account query, not
// a book search.
var (
	finePhrases     = []string{"my fine", "fine amount"}
	checkoutPhrases = []string{"my books", "borrowed books", "checkouts"}
)

// articleKeywords trigger the multi-source article search. The Hindi entries
// cover literature, article, journal/magazine, research, and paper.
var articleKeywords = []string{
	"article",
	"articles",
	"research paper",
	"journal",
	"preprint",
	"open access",
	"dataset",
	"साहित्य",
	"आर्टिकल",
	"पत्रिका",
	"जर्नल",
	"शोध",
	"पेपर",
}

// Classify maps a raw query to an intent. Rules are checked in fixed
// priority order and the first hit wins; everything unmatched is a general
// FAQ question. Pure function over the string.
func Classify(query string) types.Intent {
	q := strings.ToLower(query)

	for _, phrase := range bookPhrases {
		if strings.Contains(q, phrase) {
			return types.BookSearch
		}
	}
	for _, phrase := range finePhrases {
		if strings.Contains(q, phrase) {
			return types.AccountFines
		}
	}
	for _, phrase := range checkoutPhrases {
		if strings.Contains(q, phrase) {
			return types.AccountCheckouts
		}
	}
	for _, kw := range articleKeywords {
		if strings.Contains(q, kw) {
			return types.ArticleSearch
		}
	}

	return types.GeneralFAQ
}

// topicPattern matches a connector word ("articles on X", "X के बारे में
// articles") followed by the topic. The capture group accepts Latin and
// Devanagari letters, digits, hyphens, and spaces.
var topicPattern = regexp.MustCompile(`(?i)(?:on|par|about|ke bare mein|पर|के बारे में|का|की)\s+([a-zA-Z0-9\-अ-ह ]+)`)

// trailingWords are stripped by the last-word heuristic: in "machine
// learning articles" the topic is the word before "articles".
var trailingWords = map[string]bool{
	"articles": true,
	"पर":       true,
	"on":       true,
}

// ExtractTopic isolates the search topic from a natural-language prompt.
// It never fails: when no connector word matches it falls back to a
// trailing-word heuristic and finally to the whole trimmed query.
func ExtractTopic(query string) string {
	if m := topicPattern.FindStringSubmatch(query); m != nil {
		return strings.TrimSpace(m[1])
	}

	words := strings.Fields(strings.TrimSpace(query))
	if len(words) > 1 {
		if trailingWords[strings.ToLower(words[len(words)-1])] {
			return words[len(words)-2]
		}
		return words[len(words)-1]
	}

	return strings.TrimSpace(query)
}

// BookTopic extracts the topic from a book-search phrase by stripping the
// trigger words, mirroring the original widget's behavior ("Find Books on
// Data Structures" → "data structures").
func BookTopic(query string) string {
	topic := strings.ToLower(query)
	for _, phrase := range bookPhrases {
		topic = strings.ReplaceAll(topic, phrase, "")
	}
	return strings.TrimSpace(topic)
}

// TooShort reports whether a topic is too short to search for. Connectors
// must never be called with an empty or near-empty topic.
func TooShort(topic string) bool {
	return len([]rune(strings.TrimSpace(topic))) < 2
}
