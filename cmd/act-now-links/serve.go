package main

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/act-now-coalition/act-now-links/internal/api"
	"github.com/act-now-coalition/act-now-links/internal/auth"
	"github.com/act-now-coalition/act-now-links/internal/config"
	"github.com/act-now-coalition/act-now-links/internal/db"
	"github.com/act-now-coalition/act-now-links/internal/logging"
	"github.com/act-now-coalition/act-now-links/internal/screenshot"
	"github.com/act-now-coalition/act-now-links/internal/store"
	"github.com/act-now-coalition/act-now-links/internal/validate"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logging.New(cfg.Log.Level, cfg.Log.Pretty)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			var verifier auth.TokenVerifier
			if len(cfg.Auth.StaticTokens) > 0 {
				log.Warn("using static token verifier; not for production")
				verifier = auth.StaticVerifier(cfg.Auth.StaticTokens)
			} else {
				verifier, err = auth.NewOIDCVerifier(context.Background(), cfg.OIDC.Issuer, cfg.OIDC.Audience)
				if err != nil {
					return err
				}
			}

			shareLinks := store.NewShareLinkStore(database)
			apiKeys := store.NewAPIKeyStore(database)
			shots := screenshot.New(cfg.Screenshot.Timeout)
			defer shots.Close()

			router := api.NewRouter(api.Deps{
				Logger:      log,
				BaseURL:     cfg.BaseURL,
				ShareLinks:  shareLinks,
				APIKeys:     apiKeys,
				Auth:        auth.NewMiddleware(apiKeys, verifier, log),
				Screenshots: shots,
				EmailMode:   validate.ParseEmailMode(cfg.Auth.EmailValidation),
			})

			log.Info("listening", zap.String("addr", cfg.HTTP.Addr))
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
