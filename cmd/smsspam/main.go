package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samuel/go-smsspam/internal/config"
	"github.com/samuel/go-smsspam/internal/logging"
	"github.com/samuel/go-smsspam/internal/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "smsspam: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var configFile string

	cmd := &cobra.Command{
		Use:           "smsspam",
		Short:         "Train a naive Bayes spam filter on a labeled SMS archive and report its accuracy",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			logging.Init(cfg.Log.Level, cfg.Log.JSON)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			sum, err := pipeline.Run(ctx, cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			log.Info().
				Int("records", sum.Records).
				Float64("accuracy", sum.Metrics.Accuracy).
				Msg("done")
			fmt.Fprintf(cmd.OutOrStdout(), "\nEvery message has been labeled and saved to: %s\n", cfg.Output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	f.String("archive", "archive.zip", "zip archive holding the labeled CSV")
	f.String("output", "classified_results.csv", "results table path")
	f.Uint64("seed", 42, "shuffle seed")
	f.Float64("train-ratio", 0.8, "fraction of messages used for training")
	f.String("store", config.StoreMemory, "token count store: memory or sqlite")
	f.String("sqlite-dsn", ":memory:", "sqlite data source name for --store=sqlite")
	f.Float64("prior-smoothing", 0, "pseudo-count added to each class when computing priors")
	f.String("log-level", "info", "debug, info, warn or error")
	f.Bool("log-json", false, "log JSON lines instead of console output")

	bindFlags(v, cmd, map[string]string{
		"archive":         "archive",
		"output":          "output",
		"seed":            "seed",
		"train-ratio":     "train_ratio",
		"store":           "store",
		"sqlite-dsn":      "sqlite_dsn",
		"prior-smoothing": "prior_smoothing",
		"log-level":       "log.level",
		"log-json":        "log.json",
	})
	return cmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for flag, key := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}
