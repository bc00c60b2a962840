package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pollos-backend/internal/metrics"
	"pollos-backend/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	m := metrics.New()
	rt.board.Subscribe(m.Observe(rt.board.Prices()))

	app := server.New(server.Deps{
		Board:       rt.board,
		Audit:       rt.audit,
		Store:       rt.store,
		Metrics:     m,
		Logger:      rt.logger,
		DB:          rt.db,
		CORSOrigins: rt.cfg.CORSOrigins,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("server starting",
			zap.String("port", rt.cfg.HTTPPort),
			zap.String("store", rt.cfg.StoreDriver),
		)
		errCh <- app.Listen(":" + rt.cfg.HTTPPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	rt.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
