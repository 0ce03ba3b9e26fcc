package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dekarrin/remora/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	EnvListen = "REMORA_LISTEN_ADDRESS"
	EnvDB     = "REMORA_DATABASE"

	shutdownTimeout = 10 * time.Second
)

var (
	flagListen string
	flagDB     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an HTTP server that evaluates expressions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return initFailed("could not load settings", err)
		}

		// flags beat environment, environment beats the settings file
		if env := os.Getenv(EnvListen); env != "" {
			cfg.Server.Listen = env
		}
		if flagChanged(cmd.Flags(), "listen") {
			cfg.Server.Listen = flagListen
		}
		if env := os.Getenv(EnvDB); env != "" {
			cfg.Server.Database = env
		}
		if flagChanged(cmd.Flags(), "db") {
			cfg.Server.Database = flagDB
		}

		cfg = cfg.FillDefaults()
		if err := cfg.Validate(); err != nil {
			return initFailed("invalid settings", err)
		}

		db, err := server.ParseDBConnString(cfg.Server.Database)
		if err != nil {
			return initFailed("invalid database connection string", err, zap.String("database", cfg.Server.Database))
		}

		srvCfg := server.Config{
			DB:     db,
			Parser: cfg.Parser,
		}

		rs, err := server.New(srvCfg, logger)
		if err != nil {
			return initFailed("could not start server", err)
		}
		logger.Debug("server initialized", zap.String("db", db.Type.String()))

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			logger.Info("shutting down", zap.String("signal", sig.String()))
			if err := rs.Close(shutdownTimeout); err != nil {
				logger.Error("shutdown", zap.Error(err))
			}
		}()

		if err := rs.ServeForever(cfg.Server.Listen); err != nil {
			return initFailed("server stopped", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&flagListen, "listen", "l", "", "Listen on the given address (BIND_ADDRESS:PORT or :PORT)")
	serveCmd.Flags().StringVar(&flagDB, "db", "", "Use the given DB connection string (inmem or sqlite:DATA_DIR)")
	serveCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Limit the parse stack to the given number of frames (0 for no limit)")
	serveCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Read settings from the given TOML or YAML file")
}
