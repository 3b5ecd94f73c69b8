// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mashutosh934755/bennett-ashu-ai/pkg/types"
)

// kohaTestServer stands in for a Koha REST API: it issues tokens and
// serves biblio, account, and checkout endpoints from the supplied
// handler map keyed by URL path.
func kohaTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`)
	})
	for path, h := range handlers {
		mux.HandleFunc(path, h)
	}
	return httptest.NewServer(mux)
}

func kohaTestConnector(ts *httptest.Server) *KohaConnector {
	return NewKoha(types.CatalogConfig{
		BaseURL:      ts.URL,
		OPACBaseURL:  "https://opac.example.edu",
		ClientID:     "id",
		ClientSecret: "secret",
	}, types.HTTPConfig{Timeout: 5 * time.Second})
}

func TestKohaSearch(t *testing.T) {
	var gotAuth string
	ts := kohaTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/biblios": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			fmt.Fprint(w, `[
				{"biblio_id": 42, "title": "Data Structures in C", "author": "Kruse", "publisher": "Pearson", "copyright_date": 2007},
				{"biblio_id": 43, "title": "", "author": "", "publisher": "", "copyright_date": 0}
			]`)
		},
	})
	defer ts.Close()

	c := kohaTestConnector(ts)
	items, err := c.Search(context.Background(), "data structures", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token from the grant", gotAuth)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Title != "Data Structures in C" || items[0].Authors != "Kruse" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[0].Year != "2007" {
		t.Errorf("Year = %q, want %q", items[0].Year, "2007")
	}
	wantURL := "https://opac.example.edu/cgi-bin/koha/opac-detail.pl?biblionumber=42"
	if items[0].URL != wantURL {
		t.Errorf("URL = %q, want %q", items[0].URL, wantURL)
	}
	if items[1].Title != "No Title" || items[1].Year != "" {
		t.Errorf("items[1] = %+v, want placeholders for empty record", items[1])
	}
}

func TestKohaSearchFallsBackToTitleConvention(t *testing.T) {
	// First convention (q= JSON) returns nothing; the plain title parameter
	// convention returns a record.
	var calls int32
	ts := kohaTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/biblios": func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			if r.URL.Query().Get("q") != "" {
				fmt.Fprint(w, `[]`)
				return
			}
			if r.URL.Query().Get("title") == "" {
				t.Errorf("second attempt missing title parameter: %s", r.URL.RawQuery)
			}
			fmt.Fprint(w, `[{"biblio_id": 7, "title": "Found via title param"}]`)
		},
	})
	defer ts.Close()

	c := kohaTestConnector(ts)
	items, err := c.Search(context.Background(), "networks", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("biblio calls = %d, want 2 (both conventions tried)", calls)
	}
	if len(items) != 1 || items[0].Title != "Found via title param" {
		t.Errorf("items = %v", items)
	}
}

func TestKohaSearchAllConventionsEmpty(t *testing.T) {
	ts := kohaTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/biblios": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[]`)
		},
	})
	defer ts.Close()

	c := kohaTestConnector(ts)
	items, err := c.Search(context.Background(), "nothing here", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("items = %v, want empty non-nil slice", items)
	}
}

func TestKohaSearchUnconfigured(t *testing.T) {
	c := NewKoha(types.CatalogConfig{}, types.HTTPConfig{})
	_, err := c.Search(context.Background(), "x", 3)
	if err == nil {
		t.Fatal("expected error for unconfigured catalog")
	}
	if !strings.Contains(err.Error(), "missing credential") {
		t.Errorf("error = %q, should mention missing credential", err.Error())
	}
}

func TestKohaWebSearchURL(t *testing.T) {
	c := NewKoha(types.CatalogConfig{OPACBaseURL: "https://opac.example.edu"}, types.HTTPConfig{})
	got := c.WebSearchURL("data structures")
	want := "https://opac.example.edu/cgi-bin/koha/opac-search.pl?q=data+structures"
	if got != want {
		t.Errorf("WebSearchURL = %q, want %q", got, want)
	}

	noOPAC := NewKoha(types.CatalogConfig{BaseURL: "x", ClientID: "a", ClientSecret: "b"}, types.HTTPConfig{})
	if noOPAC.WebSearchURL("x") != "" {
		t.Error("WebSearchURL should be empty without an OPAC base URL")
	}
}

func TestKohaPatronAccount(t *testing.T) {
	ts := kohaTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/patrons/12345/account": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"balance": 150.5,
				"outstanding_debits": {"total_outstanding": 150.5},
				"outstanding_credits": {"total_outstanding": 0}
			}`)
		},
	})
	defer ts.Close()

	c := kohaTestConnector(ts)
	acct, err := c.PatronAccount(context.Background(), "12345")
	if err != nil {
		t.Fatalf("PatronAccount: %v", err)
	}
	if acct.Balance != 150.5 {
		t.Errorf("Balance = %v, want 150.5", acct.Balance)
	}
	if acct.OutstandingDebits != 150.5 {
		t.Errorf("OutstandingDebits = %v, want 150.5", acct.OutstandingDebits)
	}
}

func TestKohaCheckouts(t *testing.T) {
	var gotPatron string
	ts := kohaTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/checkouts": func(w http.ResponseWriter, r *http.Request) {
			gotPatron = r.URL.Query().Get("patron_id")
			fmt.Fprint(w, `[
				{"checkout_id": 1, "item_id": 100, "due_date": "2026-09-15"},
				{"checkout_id": 2, "item_id": 200, "due_date": "2026-09-20"}
			]`)
		},
	})
	defer ts.Close()

	c := kohaTestConnector(ts)
	rows, err := c.Checkouts(context.Background(), "12345")
	if err != nil {
		t.Fatalf("Checkouts: %v", err)
	}
	if gotPatron != "12345" {
		t.Errorf("patron_id = %q", gotPatron)
	}
	if len(rows) != 2 || rows[0].ItemID != 100 || rows[0].DueDate != "2026-09-15" {
		t.Errorf("rows = %+v", rows)
	}
}

// --- token caching ---

func TestTokenCachedUntilExpiry(t *testing.T) {
	var fetches int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		fmt.Fprint(w, `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`)
	}))
	defer ts.Close()

	current := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	h := newTokenHolder(ts.URL, "id", "secret", ts.Client(), 0)
	h.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		tok, err := h.Token(context.Background())
		if err != nil {
			t.Fatalf("Token: %v", err)
		}
		if tok != "tok" {
			t.Fatalf("token = %q", tok)
		}
	}
	if atomic.LoadInt32(&fetches) != 1 {
		t.Errorf("fetches = %d, want 1 (cached)", fetches)
	}

	// A one-hour token with the default ten-minute margin lives fifty
	// minutes. Forty-nine minutes in, still cached.
	current = current.Add(49 * time.Minute)
	if _, err := h.Token(context.Background()); err != nil {
		t.Fatalf("Token: %v", err)
	}
	if atomic.LoadInt32(&fetches) != 1 {
		t.Errorf("fetches = %d, want 1 before expiry", fetches)
	}

	// Fifty-one minutes in, the cache is stale and refresh happens.
	current = current.Add(2 * time.Minute)
	if _, err := h.Token(context.Background()); err != nil {
		t.Fatalf("Token: %v", err)
	}
	if atomic.LoadInt32(&fetches) != 2 {
		t.Errorf("fetches = %d, want 2 after expiry", fetches)
	}
}

func TestTokenConcurrentCallersShareOneFetch(t *testing.T) {
	var fetches int32
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		<-release
		fmt.Fprint(w, `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`)
	}))
	defer ts.Close()

	h := newTokenHolder(ts.URL, "id", "secret", ts.Client(), 0)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.Token(context.Background()); err != nil {
				t.Errorf("Token: %v", err)
			}
		}()
	}
	// Give the goroutines a moment to pile onto the singleflight group,
	// then let the single in-flight request complete.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&fetches); got != 1 {
		t.Errorf("fetches = %d, want 1 shared fetch", got)
	}
}

func TestTokenEndpointFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	h := newTokenHolder(ts.URL, "id", "wrong", ts.Client(), 0)
	_, err := h.Token(context.Background())
	if err == nil {
		t.Fatal("expected error on HTTP 401")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %q, should contain the status code", err.Error())
	}
}

func TestTokenEmptyAccessToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"token_type":"Bearer","expires_in":3600}`)
	}))
	defer ts.Close()

	h := newTokenHolder(ts.URL, "id", "secret", ts.Client(), 0)
	if _, err := h.Token(context.Background()); err == nil {
		t.Fatal("expected error for missing access_token")
	}
}
