// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/forkify/internal/forkify"
	"github.com/pdiddy/forkify/internal/model"
	"github.com/pdiddy/forkify/internal/storage"
	"github.com/pdiddy/forkify/pkg/types"
)

// app bundles what every subcommand needs: the configuration, the open
// storage backend, and the state store over it.
type app struct {
	cfg     types.AppConfig
	client  *forkify.Client
	storage storage.Storage
	store   *model.Store
}

func openApp(ctx context.Context) (*app, error) {
	cfg := loadConfig(viper.GetViper(), loadedSecrets)

	st, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}

	client := forkify.New(cfg.API)
	store, err := model.Open(ctx, client, st, model.Options{
		ResultsPerPage: cfg.Search.ResultsPerPage,
		Logger:         logger,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("loading bookmarks: %w", err)
	}

	return &app{cfg: cfg, client: client, storage: st, store: store}, nil
}

func (a *app) Close() error {
	return a.storage.Close()
}
