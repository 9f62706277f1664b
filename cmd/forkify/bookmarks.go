// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/forkify/internal/export"
	"github.com/pdiddy/forkify/internal/termview"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Manage bookmarked recipes",
	Long: `Bookmarks lists, adds, removes, and exports the recipes saved in the
local bookmark store. The browser UI reads the same store.`,
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Fprint(cmd.OutOrStdout(), termview.Bookmarks(a.store.Bookmarks()))
		return nil
	},
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add <id>...",
	Short: "Fetch recipes and bookmark them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		for _, id := range args {
			if err := a.store.LoadRecipe(cmd.Context(), id); err != nil {
				return fmt.Errorf("loading recipe %s: %w", id, err)
			}
			r, err := a.store.Recipe()
			if err != nil {
				return err
			}
			if err := a.store.AddBookmark(cmd.Context(), r); err != nil {
				return fmt.Errorf("bookmarking %s: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s (%s)\n", r.Title, r.ID)
		}
		return nil
	},
}

var bookmarksDeleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Remove bookmarks",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		for _, id := range args {
			if !a.store.IsBookmarked(id) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s is not bookmarked\n", id)
				continue
			}
			if err := a.store.DeleteBookmark(cmd.Context(), id); err != nil {
				return fmt.Errorf("removing %s: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
		}
		return nil
	},
}

var bookmarksExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export bookmarks to YAML, JSON, or XLSX",
	Long: `Export writes every bookmark to --output, or to stdout when no output
is given. The format follows --format, or the output file's extension.`,
	Args: cobra.NoArgs,
	RunE: runBookmarksExport,
}

func init() {
	bookmarksExportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	bookmarksExportCmd.Flags().String("format", "", "yaml, json, or xlsx (default from --output, else yaml)")

	bookmarksCmd.AddCommand(bookmarksListCmd, bookmarksAddCmd, bookmarksDeleteCmd, bookmarksExportCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

func runBookmarksExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	formatName, _ := cmd.Flags().GetString("format")

	format := export.YAML
	var err error
	switch {
	case formatName != "":
		format, err = export.ParseFormat(formatName)
	case output != "":
		format, err = export.FormatFromPath(output)
	}
	if err != nil {
		return err
	}
	if format == export.XLSX && output == "" {
		return fmt.Errorf("xlsx export needs --output")
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	bookmarks := a.store.Bookmarks()

	if output == "" {
		return export.Write(cmd.OutOrStdout(), format, bookmarks)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	if err := export.Write(f, format, bookmarks); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d bookmark(s) to %s\n", len(bookmarks), output)
	return nil
}
