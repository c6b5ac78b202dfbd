package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"secure-calculator/internal/auth"
	"secure-calculator/internal/calculator"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator and user store over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			return err
		}
		calc, err := openCalculator()
		if err != nil {
			return err
		}
		defer calc.Close() //nolint: errcheck

		server := &http.Server{
			Addr:              cfg.Server.Listen,
			Handler:           SetupRouter(calc, issuer),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("starting API server", "listen", cfg.Server.Listen, "db", cfg.Database.Path)
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

// SetupRouter wires the HTTP API. Calculation endpoints require a token
// obtained from /api/v1/login.
func SetupRouter(calc *calculator.Calculator, issuer *auth.Issuer) http.Handler {
	users := calc.Users()

	mux := http.NewServeMux()
	mux.Handle("POST /api/v1/register", auth.RegisterHandler(users))
	mux.Handle("POST /api/v1/login", auth.LoginHandler(users, issuer))
	mux.Handle("POST /api/v1/logout", auth.LogoutHandler(users))
	mux.Handle("POST /api/v1/password", auth.ChangePasswordHandler(users))
	mux.Handle("POST /api/v1/calculate", auth.JWTMiddleware(issuer, calculator.CalculateHandler(calc)))
	mux.Handle("GET /api/v1/history", auth.JWTMiddleware(issuer, calculator.HistoryHandler(calc)))
	return mux
}
