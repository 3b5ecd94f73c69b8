// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mashutosh934755/bennett-ashu-ai/internal/assistant"
	"github.com/mashutosh934755/bennett-ashu-ai/internal/compose"
	"github.com/mashutosh934755/bennett-ashu-ai/internal/faq"
	"github.com/mashutosh934755/bennett-ashu-ai/internal/httputil"
	"github.com/mashutosh934755/bennett-ashu-ai/internal/sources"
	"github.com/mashutosh934755/bennett-ashu-ai/pkg/types"
)

// loadConfig assembles the typed configuration from viper and the secrets
// store. Config-file values win over secrets so a deployment can pin keys
// either way.
func loadConfig() types.AssistantConfig {
	var cfg types.AssistantConfig

	cfg.Sources.Timeout = viper.GetDuration("sources.timeout")
	cfg.Sources.UserAgent = viper.GetString("sources.user_agent")
	if cfg.Sources.UserAgent == "" {
		cfg.Sources.UserAgent = "ashu-assistant/" + version
	}
	cfg.Sources.Limit = viper.GetInt("sources.limit")
	if cfg.Sources.Limit <= 0 {
		cfg.Sources.Limit = 3
	}
	cfg.Sources.GoogleBooksAPIKey = loadedSecrets.Get("google-books-api-key", viper.GetString("sources.google_books_api_key"))
	cfg.Sources.COREAPIKey = loadedSecrets.Get("core-api-key", viper.GetString("sources.core_api_key"))

	cfg.Catalog.BaseURL = viper.GetString("catalog.base_url")
	cfg.Catalog.OPACBaseURL = viper.GetString("catalog.opac_base_url")
	if cfg.Catalog.OPACBaseURL == "" {
		cfg.Catalog.OPACBaseURL = "https://libraryopac.bennett.edu.in"
	}
	cfg.Catalog.ClientID = loadedSecrets.Get("koha-client-id", viper.GetString("catalog.client_id"))
	cfg.Catalog.ClientSecret = loadedSecrets.Get("koha-client-secret", viper.GetString("catalog.client_secret"))
	cfg.Catalog.TokenMargin = viper.GetDuration("catalog.token_margin")

	cfg.GenAI.Model = viper.GetString("genai.model")
	if cfg.GenAI.Model == "" {
		cfg.GenAI.Model = "gemini-2.0-flash"
	}
	cfg.GenAI.APIKey = loadedSecrets.Get("gemini-api-key", viper.GetString("genai.api_key"))

	cfg.Server.Addr = viper.GetString("server.addr")
	cfg.Server.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")

	return cfg
}

// newLogger builds the diagnostic logger. Quiet by default: swallowed
// connector failures only show up with --verbose.
func newLogger() (*zap.Logger, error) {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	if verbose {
		return zap.NewDevelopment()
	}
	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	return logCfg.Build()
}

// newAssistant wires the connectors, composer, and fallback from config.
func newAssistant(cfg types.AssistantConfig, logger *zap.Logger) *assistant.Assistant {
	client := httputil.NewClient(cfg.Sources.HTTPConfig)
	ua := cfg.Sources.UserAgent

	googleBooks := &sources.GoogleBooksConnector{Client: client, APIKey: cfg.Sources.GoogleBooksAPIKey, UserAgent: ua}
	core := &sources.COREConnector{Client: client, APIKey: cfg.Sources.COREAPIKey, UserAgent: ua}
	arxiv := &sources.ArxivConnector{Client: client, UserAgent: ua}
	doaj := &sources.DOAJConnector{Client: client, UserAgent: ua}
	datacite := &sources.DataCiteConnector{Client: client, UserAgent: ua}
	catalog := sources.NewKoha(cfg.Catalog, cfg.Sources.HTTPConfig)

	facts := faq.DefaultFacts()
	if path := viper.GetString("genai.facts_file"); path != "" {
		loaded, err := faq.LoadFacts(path)
		if err != nil {
			logger.Warn("facts file unusable, using defaults", zap.Error(err))
		} else {
			facts = loaded
		}
	}

	genai := &faq.GeminiBackend{
		APIKey: cfg.GenAI.APIKey,
		Model:  cfg.GenAI.Model,
		Client: client,
		Facts:  facts,
	}

	return &assistant.Assistant{
		Books:    []sources.Connector{catalog, googleBooks},
		Articles: []sources.Connector{googleBooks, core, arxiv, doaj, datacite},
		Account:  catalog,
		Catalog:  catalog,
		FAQ:      genai,
		Composer: compose.New(),
		Limit:    cfg.Sources.Limit,
		Logger:   logger,
	}
}
