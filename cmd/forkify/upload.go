// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/forkify/internal/termview"
	"github.com/pdiddy/forkify/pkg/types"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a new recipe",
	Long: `Upload publishes a recipe of your own to the recipe API and bookmarks
it. The recipe comes from a YAML file (--file) or from flags; flags
override fields of the file. Ingredients are written
"quantity,unit,description", for example "0.5,kg,rice".

Uploading needs an API key: set api.key, FORKIFY_API_KEY, or
.secrets/forkify-api-key.`,
	Args: cobra.NoArgs,
	RunE: runUpload,
}

func init() {
	registerUploadFlags(uploadCmd)
	rootCmd.AddCommand(uploadCmd)
}

func registerUploadFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "YAML file holding the recipe form")
	cmd.Flags().String("title", "", "recipe title")
	cmd.Flags().String("source-url", "", "URL of the directions")
	cmd.Flags().String("image", "", "image URL")
	cmd.Flags().String("publisher", "", "publisher name")
	cmd.Flags().String("cooking-time", "", "preparation time in minutes")
	cmd.Flags().String("servings", "", "number of servings")
	cmd.Flags().StringArray("ingredient", nil, "ingredient line; repeat for each ingredient")
}

func runUpload(cmd *cobra.Command, args []string) error {
	form, err := uploadForm(cmd)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := a.store.UploadRecipe(cmd.Context(), form)
	if err != nil && r.ID == "" {
		return fmt.Errorf("uploading recipe: %w", err)
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: recipe %s uploaded but not bookmarked: %v\n", r.ID, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "You created new recipe!")
	fmt.Fprint(cmd.OutOrStdout(), termview.Recipe(r))
	return nil
}

// uploadForm reads --file, then applies any field flags on top.
func uploadForm(cmd *cobra.Command) (types.NewRecipeForm, error) {
	var form types.NewRecipeForm

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return form, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &form); err != nil {
			return form, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	fields := map[string]*string{
		"title":        &form.Title,
		"source-url":   &form.SourceURL,
		"image":        &form.Image,
		"publisher":    &form.Publisher,
		"cooking-time": &form.CookingTime,
		"servings":     &form.Servings,
	}
	for name, dst := range fields {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	if cmd.Flags().Changed("ingredient") {
		form.Ingredients, _ = cmd.Flags().GetStringArray("ingredient")
	}
	return form, nil
}
