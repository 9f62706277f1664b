// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the forkify CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/forkify/internal/secrets"
	"github.com/pdiddy/forkify/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials read from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// logger is configured in PersistentPreRunE from --log-level.
var logger = slog.New(slog.DiscardHandler)

var rootCmd = &cobra.Command{
	Use:   "forkify",
	Short: "Search, read, bookmark, and publish recipes",
	Long: `forkify searches the forkify recipe API, shows recipes scaled to any
number of servings, keeps a local list of bookmarks, and uploads your own
recipes.

Run "forkify serve" for the browser UI. The other subcommands act on the
same bookmark store from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(viper.GetString("log.level"))

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", "count", len(s))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./forkify.yaml or ~/.config/forkify/forkify.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("storage", "", "bookmark storage backend: sqlite, file, or redis")
	rootCmd.PersistentFlags().String("storage-path", "", "path of the sqlite database or storage file")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("storage.backend", rootCmd.PersistentFlags().Lookup("storage"))
	viper.BindPFlag("storage.path", rootCmd.PersistentFlags().Lookup("storage-path"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("forkify")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "forkify"))
		}
	}

	viper.SetEnvPrefix("FORKIFY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", types.DefaultAPIURL)
	v.SetDefault("api.timeout", types.DefaultTimeout)
	v.SetDefault("api.max_retries", types.DefaultMaxRetries)
	v.SetDefault("api.user_agent", types.DefaultUserAgent)
	v.SetDefault("search.results_per_page", types.DefaultResultsPerPage)
	v.SetDefault("ui.modal_close_sec", types.DefaultModalCloseSec)
	v.SetDefault("storage.backend", string(types.DefaultStorageBackend))
	v.SetDefault("storage.namespace", types.DefaultRedisNamespace)
	v.SetDefault("server.addr", types.DefaultServerAddr)
}

// loadConfig assembles the configuration from v. Secrets fill in the API
// key and Redis URL when neither the file nor the environment sets them.
func loadConfig(v *viper.Viper, s secrets.Secrets) types.AppConfig {
	cfg := types.AppConfig{
		API: types.APIConfig{
			URL:        v.GetString("api.url"),
			Key:        v.GetString("api.key"),
			Timeout:    v.GetDuration("api.timeout"),
			MaxRetries: v.GetInt("api.max_retries"),
			UserAgent:  v.GetString("api.user_agent"),
		},
		Search: types.SearchConfig{ResultsPerPage: v.GetInt("search.results_per_page")},
		UI:     types.UIConfig{ModalCloseSec: v.GetFloat64("ui.modal_close_sec")},
		Storage: types.StorageConfig{
			Backend:   types.StorageBackend(v.GetString("storage.backend")),
			Path:      v.GetString("storage.path"),
			RedisURL:  v.GetString("storage.redis_url"),
			Namespace: v.GetString("storage.namespace"),
		},
		Server: types.ServerConfig{Addr: v.GetString("server.addr")},
	}
	if cfg.API.Key == "" {
		cfg.API.Key = s.APIKey()
	}
	if cfg.Storage.RedisURL == "" {
		cfg.Storage.RedisURL = s.RedisURL()
	}
	return cfg.WithDefaults()
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
