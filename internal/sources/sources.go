// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources wraps the external data providers behind a uniform
// search contract. Each connector performs one HTTP call, maps the
// provider's native schema into types.ResultItem, and reports failures as
// errors. The fan-out layer converts every failure into an empty list so
// that, to the rest of the assistant, a broken provider is
// indistinguishable from a provider with zero matches. Failures are still
// logged, which is the only diagnostic trace of an outage.
package sources

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/mashutosh934755/bennett-ashu-ai/pkg/types"
)

// ErrMissingCredential is returned by connectors whose required API key or
// client credential is absent. The connector short-circuits before any
// network call.
var ErrMissingCredential = errors.New("missing credential")

// Connector searches a single external data source. Implementations must
// honor ctx, request at most limit items, and substitute empty strings for
// absent fields. Callers guarantee a non-empty topic.
type Connector interface {
	Name() string
	Search(ctx context.Context, topic string, limit int) ([]types.ResultItem, error)
}

// Fanout queries all connectors concurrently and returns one entry per
// connector, keyed by name. A failed connector contributes an empty list;
// the error is logged and goes no further. Compose order is the caller's
// concern, so completion order does not matter here.
func Fanout(ctx context.Context, connectors []Connector, topic string, limit int, logger *zap.Logger) map[string][]types.ResultItem {
	type sourceResult struct {
		name  string
		items []types.ResultItem
		err   error
	}

	ch := make(chan sourceResult, len(connectors))
	var wg sync.WaitGroup

	for _, c := range connectors {
		wg.Add(1)
		go func(c Connector) {
			defer wg.Done()
			items, err := c.Search(ctx, topic, limit)
			ch <- sourceResult{name: c.Name(), items: items, err: err}
		}(c)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	results := make(map[string][]types.ResultItem, len(connectors))
	for sr := range ch {
		if sr.err != nil {
			logger.Warn("source failed, treating as zero results",
				zap.String("source", sr.name),
				zap.String("topic", topic),
				zap.Error(sr.err))
			results[sr.name] = []types.ResultItem{}
			continue
		}
		if sr.items == nil {
			sr.items = []types.ResultItem{}
		}
		results[sr.name] = sr.items
	}
	return results
}

// cap truncates items to limit when the provider returned more than asked.
func capItems(items []types.ResultItem, limit int) []types.ResultItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// orDefault substitutes fallback for an empty provider field so bullet
// lines always have a title and a link target.
func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
