// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Answer one library query and print the Markdown answer",
	Long: `Query routes one natural-language request — "find books on data
structures", "articles on climate change", "library timings" — through the
intent router and prints the composed Markdown answer to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		patron, _ := cmd.Flags().GetString("patron")

		a := newAssistant(loadConfig(), logger)
		answer := a.HandleQuery(context.Background(), strings.Join(args, " "), patron)
		fmt.Println(answer)
		return nil
	},
}

func init() {
	queryCmd.Flags().String("patron", "", "patron ID for account queries (fines, checkouts)")

	rootCmd.AddCommand(queryCmd)
}
