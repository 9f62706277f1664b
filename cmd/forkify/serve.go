// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/forkify/internal/controller"
	"github.com/pdiddy/forkify/internal/server"
	"github.com/pdiddy/forkify/internal/view"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the browser UI",
	Long: `Serve starts the forkify web page on a local address. Searching,
paging, scaling servings, bookmarking, and uploading all happen in the
browser; bookmarks are saved to the configured storage backend.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8080)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ctrl := controller.New(a.store, view.New(), controller.Options{
		ModalCloseSec: a.cfg.UI.ModalCloseSec,
		Logger:        logger,
	})
	srv := server.New(ctrl, logger)

	cmd.Printf("forkify listening on http://%s\n", a.cfg.Server.Addr)
	return srv.Run(ctx, a.cfg.Server.Addr)
}
