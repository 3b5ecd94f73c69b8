// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assistant ties the router, connectors, composer, and FAQ fallback
// into the single entry point the UI host calls. One query turn in, one
// Markdown answer out; no state survives the turn.
package assistant

import (
	"context"

	"go.uber.org/zap"

	"github.com/mashutosh934755/bennett-ashu-ai/internal/compose"
	"github.com/mashutosh934755/bennett-ashu-ai/internal/route"
	"github.com/mashutosh934755/bennett-ashu-ai/internal/sources"
	"github.com/mashutosh934755/bennett-ashu-ai/pkg/types"
)

// FAQBackend answers general questions. It never fails; failure modes come
// back as user-readable sentences.
type FAQBackend interface {
	Answer(ctx context.Context, question string) string
}

// AccountBackend looks up a patron's fines and checkouts. Satisfied by
// *sources.KohaConnector.
type AccountBackend interface {
	PatronAccount(ctx context.Context, patronID string) (types.AccountSummary, error)
	Checkouts(ctx context.Context, patronID string) ([]types.Checkout, error)
}

// CatalogLinker builds the OPAC web-search fallback URL. Satisfied by
// *sources.KohaConnector.
type CatalogLinker interface {
	WebSearchURL(topic string) string
}

// Assistant answers one query per call. Connector slices are consulted
// concurrently but composed in the fixed per-intent order.
type Assistant struct {
	// Books are the connectors consulted for book searches, in compose
	// order (catalog, then book metadata).
	Books []sources.Connector

	// Articles are the connectors consulted for article searches, in
	// compose order.
	Articles []sources.Connector

	// Account serves the personal-account intents. Nil disables them.
	Account AccountBackend

	// Catalog builds OPAC fallback links. Nil omits them.
	Catalog CatalogLinker

	// FAQ answers everything that is not a search or account query.
	FAQ FAQBackend

	// Composer renders the Markdown answers.
	Composer *compose.Composer

	// Limit is the per-source item cap (default 3).
	Limit int

	// Logger receives the internal-only diagnostics for swallowed
	// connector failures.
	Logger *zap.Logger
}

// HandleQuery routes one user turn and returns the Markdown answer.
// patronID identifies the logged-in patron for account intents; empty means
// anonymous.
func (a *Assistant) HandleQuery(ctx context.Context, text, patronID string) string {
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := a.Limit
	if limit <= 0 {
		limit = 3
	}

	switch route.Classify(text) {
	case types.BookSearch:
		topic := route.BookTopic(text)
		if route.TooShort(topic) {
			return compose.TopicPrompt
		}
		results := sources.Fanout(ctx, a.Books, topic, limit, logger)
		return a.Composer.Books(topic, results, a.catalogSearchURL(topic))

	case types.ArticleSearch:
		topic := route.ExtractTopic(text)
		if route.TooShort(topic) {
			return compose.TopicPrompt
		}
		results := sources.Fanout(ctx, a.Articles, topic, limit, logger)
		return a.Composer.Articles(topic, results)

	case types.AccountFines:
		if patronID == "" || a.Account == nil {
			return compose.LoginPrompt
		}
		acct, err := a.Account.PatronAccount(ctx, patronID)
		if err != nil {
			logger.Warn("account lookup failed", zap.String("patron", patronID), zap.Error(err))
			return compose.AccountUnavailable
		}
		return compose.Fines(acct)

	case types.AccountCheckouts:
		if patronID == "" || a.Account == nil {
			return compose.LoginPrompt
		}
		checkouts, err := a.Account.Checkouts(ctx, patronID)
		if err != nil {
			logger.Warn("checkouts lookup failed", zap.String("patron", patronID), zap.Error(err))
			return compose.AccountUnavailable
		}
		return compose.Checkouts(checkouts)

	default:
		return a.FAQ.Answer(ctx, text)
	}
}

// catalogSearchURL returns the OPAC web-search fallback link, or empty when
// no catalog is wired.
func (a *Assistant) catalogSearchURL(topic string) string {
	if a.Catalog == nil {
		return ""
	}
	return a.Catalog.WebSearchURL(topic)
}
