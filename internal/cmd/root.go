// Package cmd wires the telemstore binary: configuration resolution,
// logger setup, backend selection and the HTTP front end.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/telemstore/telemstore/config"
	"github.com/telemstore/telemstore/engine"
	"github.com/telemstore/telemstore/server"
	"github.com/telemstore/telemstore/store"
	"github.com/telemstore/telemstore/store/badgerdb"
	"github.com/telemstore/telemstore/store/leveldb"
	"github.com/telemstore/telemstore/telemetry"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "telemstore",
	Short: "Embedded observability store",
	Long: `telemstore ingests typed telemetry records (metrics, logs, traces)
tagged with arbitrary key/value labels, persists them in an embedded
ordered key-value store, and answers conjunctive queries filtered by
name, timestamp range and label equality.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to YAML config file")

	rootCmd.Flags().String("db-path", config.Default().DBPath, "Database directory")
	rootCmd.Flags().String("host", config.Default().Host, "Listen address")
	rootCmd.Flags().Int("port", config.Default().Port, "Listen port")
	rootCmd.Flags().Bool("http", config.Default().HTTP, "Enable the HTTP interface")
	rootCmd.Flags().String("kind", config.Default().Kind, "Record kind to serve (metric|log|trace)")
	rootCmd.Flags().String("backend", config.Default().Backend, "Storage backend (badger|leveldb)")
	rootCmd.Flags().Bool("debug", false, "Debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting",
		zap.String("kind", cfg.Kind),
		zap.String("backend", cfg.Backend),
		zap.String("db_path", cfg.DBPath))

	switch cfg.Kind {
	case config.KindMetric:
		return serve[telemetry.IncomingMetric, telemetry.Metric, telemetry.MetricQuery](
			ctx, cfg, log, telemetry.MetricAdapter{}, telemetry.IncomingMetric.Record)
	case config.KindLog:
		return serve[telemetry.IncomingLog, telemetry.Log, telemetry.LogQuery](
			ctx, cfg, log, telemetry.LogAdapter{}, telemetry.IncomingLog.Record)
	default:
		return serve[telemetry.IncomingTrace, telemetry.Trace, telemetry.TraceQuery](
			ctx, cfg, log, telemetry.TraceAdapter{}, telemetry.IncomingTrace.Record)
	}
}

func serve[I, T, Q any](ctx context.Context, cfg config.Config, log *zap.Logger, adapter engine.Adapter[T, Q], record func(I) T) error {
	backend, err := openBackend(cfg, adapter.Families())
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := engine.NewMetrics(reg, cfg.Kind)

	eng := engine.New(backend, adapter, engine.WithLogger(log), engine.WithMetrics(metrics))
	defer eng.Close()

	if !cfg.HTTP {
		log.Warn("no interface enabled, idling until shutdown")
		<-ctx.Done()
		return nil
	}

	srv := server.New(eng, record, cfg.Host, cfg.Port,
		server.WithLogger(log), server.WithGatherer(reg))
	return srv.Run(ctx)
}

func openBackend(cfg config.Config, families []string) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendLevelDB:
		return leveldb.Open(cfg.DBPath, families...)
	default:
		return badgerdb.Open(badgerdb.Options{Path: cfg.DBPath}, families...)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
