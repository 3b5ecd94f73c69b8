// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mashutosh934755/bennett-ashu-ai/internal/httputil"
	"github.com/mashutosh934755/bennett-ashu-ai/pkg/types"
)

// KohaConnector talks to a Koha integrated-library-system instance: catalog
// search for the book flow, plus patron account and checkout lookups. All
// calls require an OAuth2 client-credentials token, fetched lazily and
// cached by the embedded tokenHolder.
type KohaConnector struct {
	cfg       types.CatalogConfig
	client    *http.Client
	userAgent string
	tokens    *tokenHolder
}

// NewKoha builds a catalog connector from explicit configuration. The
// returned connector never reads ambient state; a missing base URL or
// credential simply degrades every call to "no results".
func NewKoha(cfg types.CatalogConfig, httpCfg types.HTTPConfig) *KohaConnector {
	client := httputil.NewClient(httpCfg)
	return &KohaConnector{
		cfg:       cfg,
		client:    client,
		userAgent: httpCfg.UserAgent,
		tokens: newTokenHolder(cfg.BaseURL+"/api/v1/oauth/token",
			cfg.ClientID, cfg.ClientSecret, client, cfg.TokenMargin),
	}
}

// Name returns the connector identifier.
func (c *KohaConnector) Name() string { return "catalog" }

// configured reports whether the connector has enough configuration to
// attempt a network call.
func (c *KohaConnector) configured() bool {
	return c.cfg.BaseURL != "" && c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

// Search queries the catalog's biblio endpoint. Koha deployments differ in
// which query-parameter convention their version accepts, so the connector
// tries each in turn and returns the first convention that yields records.
// When every convention fails or comes back empty, the caller gets zero
// records; the composer then links the public OPAC search page instead.
func (c *KohaConnector) Search(ctx context.Context, topic string, limit int) ([]types.ResultItem, error) {
	if !c.configured() {
		return nil, fmt.Errorf("catalog: %w", ErrMissingCredential)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog token: %w", err)
	}
	headers := map[string]string{"Authorization": "Bearer " + token}

	var lastErr error
	for _, reqURL := range c.searchURLs(topic, limit) {
		var biblios []kohaBiblio
		if err := httputil.GetJSON(ctx, c.client, reqURL, c.userAgent, headers, &biblios); err != nil {
			lastErr = err
			continue
		}
		if len(biblios) == 0 {
			continue
		}

		var items []types.ResultItem
		for _, b := range biblios {
			year := ""
			if b.CopyrightDate > 0 {
				year = strconv.Itoa(b.CopyrightDate)
			}
			items = append(items, types.ResultItem{
				Title:     orDefault(b.Title, "No Title"),
				URL:       c.recordURL(b.BiblioID),
				Authors:   b.Author,
				Publisher: b.Publisher,
				Year:      year,
			})
		}
		return capItems(items, limit), nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("catalog: %w", lastErr)
	}
	return []types.ResultItem{}, nil
}

// searchURLs returns the candidate biblio queries in the order they are
// tried: the structured q= JSON convention first, then the plain title
// parameter older deployments accept.
func (c *KohaConnector) searchURLs(topic string, limit int) []string {
	base := c.cfg.BaseURL + "/api/v1/biblios"
	perPage := fmt.Sprintf("%d", limit)

	jsonQuery := url.Values{
		"q":         {fmt.Sprintf(`{"title":{"-like":"%%%s%%"}}`, topic)},
		"_per_page": {perPage},
	}
	titleQuery := url.Values{
		"title":     {topic},
		"_per_page": {perPage},
	}
	return []string{
		base + "?" + jsonQuery.Encode(),
		base + "?" + titleQuery.Encode(),
	}
}

// recordURL links a biblio record to its public OPAC detail page.
func (c *KohaConnector) recordURL(biblioID int) string {
	if c.cfg.OPACBaseURL == "" {
		return "#"
	}
	return fmt.Sprintf("%s/cgi-bin/koha/opac-detail.pl?biblionumber=%d", c.cfg.OPACBaseURL, biblioID)
}

// WebSearchURL builds the public OPAC search page for a topic, used as the
// fallback link when the REST search yields nothing.
func (c *KohaConnector) WebSearchURL(topic string) string {
	if c.cfg.OPACBaseURL == "" {
		return ""
	}
	return c.cfg.OPACBaseURL + "/cgi-bin/koha/opac-search.pl?q=" + url.QueryEscape(topic)
}

// PatronAccount fetches the patron's account balance. A positive balance is
// money owed to the library.
func (c *KohaConnector) PatronAccount(ctx context.Context, patronID string) (types.AccountSummary, error) {
	if !c.configured() {
		return types.AccountSummary{}, fmt.Errorf("catalog: %w", ErrMissingCredential)
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return types.AccountSummary{}, fmt.Errorf("catalog token: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/v1/patrons/%s/account", c.cfg.BaseURL, url.PathEscape(patronID))
	headers := map[string]string{"Authorization": "Bearer " + token}

	var acct kohaAccount
	if err := httputil.GetJSON(ctx, c.client, reqURL, c.userAgent, headers, &acct); err != nil {
		return types.AccountSummary{}, fmt.Errorf("catalog account: %w", err)
	}

	return types.AccountSummary{
		Balance:            acct.Balance,
		OutstandingDebits:  acct.OutstandingDebits.TotalOutstanding,
		OutstandingCredits: acct.OutstandingCredits.TotalOutstanding,
	}, nil
}

// Checkouts fetches the patron's current checkouts.
func (c *KohaConnector) Checkouts(ctx context.Context, patronID string) ([]types.Checkout, error) {
	if !c.configured() {
		return nil, fmt.Errorf("catalog: %w", ErrMissingCredential)
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog token: %w", err)
	}

	params := url.Values{"patron_id": {patronID}}
	reqURL := c.cfg.BaseURL + "/api/v1/checkouts?" + params.Encode()
	headers := map[string]string{"Authorization": "Bearer " + token}

	var rows []kohaCheckout
	if err := httputil.GetJSON(ctx, c.client, reqURL, c.userAgent, headers, &rows); err != nil {
		return nil, fmt.Errorf("catalog checkouts: %w", err)
	}

	var checkouts []types.Checkout
	for _, row := range rows {
		checkouts = append(checkouts, types.Checkout{
			ItemID:  row.ItemID,
			DueDate: row.DueDate,
		})
	}
	return checkouts, nil
}

// Koha REST API JSON structures.
type kohaBiblio struct {
	BiblioID      int    `json:"biblio_id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	CopyrightDate int    `json:"copyright_date"`
}

type kohaAccount struct {
	Balance            float64          `json:"balance"`
	OutstandingDebits  kohaOutstanding  `json:"outstanding_debits"`
	OutstandingCredits kohaOutstanding  `json:"outstanding_credits"`
}

type kohaOutstanding struct {
	TotalOutstanding float64 `json:"total_outstanding"`
}

type kohaCheckout struct {
	CheckoutID int    `json:"checkout_id"`
	ItemID     int    `json:"item_id"`
	DueDate    string `json:"due_date"`
}
