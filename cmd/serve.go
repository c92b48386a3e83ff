package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/skillpath/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quiz HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			e.cfg.Server.Addr = addr
		}

		engine, closeEngine, err := buildEngine(ctx, e)
		if err != nil {
			return err
		}
		defer closeEngine()

		if e.cfg.Auth.JWTSecret == "" {
			e.log.Warn("auth disabled: no JWT secret configured")
		}

		srv := server.New(engine, e.store, server.Config{
			AllowedOrigins: e.cfg.Server.AllowedOrigins,
			RequestTimeout: e.cfg.Server.RequestTimeout,
			JWTSecret:      e.cfg.Auth.JWTSecret,
		}, e.log)

		e.log.Info("listening",
			zap.String("addr", e.cfg.Server.Addr),
			zap.String("llm_provider", e.cfg.LLM.Provider),
			zap.String("db", e.store.Dialect()))
		return srv.ListenAndServe(ctx, e.cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
