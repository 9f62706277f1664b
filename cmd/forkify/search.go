// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/forkify/internal/termview"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search recipes",
	Long: `Search queries the recipe API and prints one page of results. Use
--page to move through the results.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("page", 1, "result page to show")
	searchCmd.Flags().Bool("json", false, "output the page as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	page, _ := cmd.Flags().GetInt("page")
	asJSON, _ := cmd.Flags().GetBool("json")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.LoadSearchResults(cmd.Context(), query); err != nil {
		return fmt.Errorf("searching %q: %w", query, err)
	}
	results := a.store.SearchResultPage(page)

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	fmt.Fprint(cmd.OutOrStdout(), termview.Results(query, results, page, a.store.PageCount()))
	return nil
}
