// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/forkify/internal/termview"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe <id>",
	Short: "Show a recipe",
	Long: `Recipe fetches a recipe by id and prints it. With --servings the
ingredient quantities are scaled to the requested number of servings.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecipe,
}

func init() {
	recipeCmd.Flags().Int("servings", 0, "scale the recipe to this many servings")
	recipeCmd.Flags().Bool("json", false, "output the recipe as JSON")

	rootCmd.AddCommand(recipeCmd)
}

func runRecipe(cmd *cobra.Command, args []string) error {
	servings, _ := cmd.Flags().GetInt("servings")
	asJSON, _ := cmd.Flags().GetBool("json")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.LoadRecipe(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("loading recipe %s: %w", args[0], err)
	}
	if cmd.Flags().Changed("servings") {
		if err := a.store.UpdateServings(servings); err != nil {
			return err
		}
	}

	r, err := a.store.Recipe()
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Fprint(cmd.OutOrStdout(), termview.Recipe(r))
	return nil
}
