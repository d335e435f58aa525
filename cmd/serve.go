package cmd

import (
	"fmt"
	"net/http"

	"github.com/kayz/slidesmith/internal/logger"
	"github.com/kayz/slidesmith/internal/maintenance"
	"github.com/kayz/slidesmith/internal/persist"
	"github.com/kayz/slidesmith/internal/webui"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	hub := webui.NewHub()
	eng, auditor := buildEngine(cfg, hub)
	generateFn, err := buildGenerateFunc(cfg)
	if err != nil {
		return err
	}

	var history *persist.Store
	if cfg.History.Enabled {
		history, err = persist.NewStore(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer history.Close()
	}

	scheduler := maintenance.NewScheduler(cfg.Maintenance, eng, auditor)
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Stop()

	server := webui.NewServer(eng, generateFn, history, hub)
	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("serving on %s", addr)
	return http.ListenAndServe(addr, server.Handler())
}
