package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ashu-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourcesConfig holds settings shared by the search connectors.
type SourcesConfig struct {
	HTTPConfig `yaml:",inline"`

	// Limit is the maximum number of items requested per source (default 3).
	Limit int `json:"limit" yaml:"limit"`

	// GoogleBooksAPIKey authorizes the Google Books connector. When empty
	// the connector returns no results without calling the network.
	GoogleBooksAPIKey string `json:"google_books_api_key,omitempty" yaml:"google_books_api_key,omitempty"`

	// COREAPIKey is the Bearer token for the CORE open-access index. When
	// empty the connector returns no results without calling the network.
	COREAPIKey string `json:"core_api_key,omitempty" yaml:"core_api_key,omitempty"`
}

// CatalogConfig holds settings for the Koha integrated-library-system
// connector.
type CatalogConfig struct {
	// BaseURL is the Koha server root (e.g. "https://koha.example.edu").
	// The connector appends /api/v1/... paths.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// OPACBaseURL is the public catalog UI root, used to build web-search
	// fallback links (e.g. "https://libraryopac.bennett.edu.in").
	OPACBaseURL string `json:"opac_base_url" yaml:"opac_base_url"`

	// ClientID and ClientSecret are the OAuth2 client-credentials pair.
	// When either is empty the connector returns no results immediately.
	ClientID     string `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`

	// TokenMargin is subtracted from the token's reported lifetime so a
	// refresh happens before the server-side expiry (default 10m, which
	// turns Koha's usual 1h tokens into ~50min of effective use).
	TokenMargin time.Duration `json:"token_margin" yaml:"token_margin"`
}

// GenAIConfig holds settings for the generative-language FAQ fallback.
type GenAIConfig struct {
	// Model is the generative model identifier (e.g. "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the generative-language endpoint.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ServerConfig holds settings for the HTTP facade.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins is the CORS allow-list for the widget host. An empty
	// list allows localhost only.
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

// AssistantConfig groups all component configurations.
type AssistantConfig struct {
	Sources SourcesConfig `json:"sources" yaml:"sources"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	GenAI   GenAIConfig   `json:"genai" yaml:"genai"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}
