// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mashutosh934755/bennett-ashu-ai/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the assistant over HTTP for the chat widget",
	Long: `Serve starts an HTTP server with a single query endpoint
(POST /v1/query) and a health check (GET /healthz). The chat widget posts
the user's text and renders the returned Markdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		cfg := loadConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		a := newAssistant(cfg, logger)
		return server.New(cfg.Server, a, logger).ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	viper.SetDefault("server.addr", ":8080")

	rootCmd.AddCommand(serveCmd)
}
