package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"irship/link"
)

var flagListen string

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Wait for the other board to connect, then play",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagListen != "" {
			cfg.Link.Listen = flagListen
		}
		return runHost(cmd.Context())
	},
}

// runHost serves the link on cfg.Link.Listen and plays against the first
// board that connects.
func runHost(ctx context.Context) error {
	log, closer, err := openLog()
	if err != nil {
		return err
	}
	defer closer.Close()

	listener := link.NewListener(link.WithEcho(cfg.Link.Echo), link.WithLogger(log))
	srv := &http.Server{
		Addr:              cfg.Link.Listen,
		Handler:           routes(listener),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("link server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		defer srv.Shutdown(context.Background())

		fmt.Printf("Waiting for the other board on %s/link ...\n", cfg.Link.Listen)
		conn, err := listener.Accept(ctx)
		if err != nil {
			return nil
		}
		defer conn.Close()
		log.Info("peer connected")
		return play(ctx, conn, conn.Done(), log)
	})
	return g.Wait()
}

func routes(listener *link.Listener) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/link", listener.ServeHTTP)
	return r
}

func init() {
	hostCmd.Flags().StringVar(&flagListen, "listen", "", "Address to serve the link on (default from config, :9191)")
}
