package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"business-eval/api/internal/analysis"
	"business-eval/api/internal/app"
	"business-eval/api/internal/config"
	"business-eval/api/internal/handle"
	"business-eval/api/internal/httpserver"
	"business-eval/api/internal/logger"
	"business-eval/api/internal/tracing"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:          "business-eval",
		Short:        "Business idea evaluation service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfgPath)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file (defaults to $CONFIG_FILE)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfgPath)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "score [file|-]",
		Short: "Score an idea JSON document with the rule-based scorer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			return score(cmd.InOrStdin(), cmd.OutOrStdout(), src)
		},
	})
	return root
}

func serve(ctx context.Context, cfgPath string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}

	shutdown, err := tracing.Setup(ctx, cfg.ServiceName)
	if err != nil {
		log.Warnf("tracing disabled: %v", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warnf("tracing shutdown: %v", err)
			}
		}()
	}

	ev, err := app.NewEvaluator(cfg, log)
	if err != nil {
		return err
	}

	h := handle.New(ev, cfg.ServiceName, log)
	router := httpserver.NewRouter(h, cfg.CORS, log)
	return httpserver.Run(ctx, "0.0.0.0:"+cfg.Port, router, log.WithField("service", cfg.ServiceName))
}

func score(stdin io.Reader, out io.Writer, src string) error {
	in := stdin
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var idea analysis.BusinessIdea
	if err := json.NewDecoder(in).Decode(&idea); err != nil {
		return fmt.Errorf("decode idea: %w", err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(analysis.Score(idea))
}
