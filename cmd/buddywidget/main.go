package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/nicolagi/buddy"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithField("cause", err).Fatal("Widget failed")
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		family     string
		interval   time.Duration
		inAcme     bool
	)
	cmd := &cobra.Command{
		Use:           "buddywidget",
		Short:         "Show a live summary of outstanding tasks",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buddy.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("family") {
				cfg.Widget.Family = family
			}
			if cmd.Flags().Changed("interval") {
				cfg.Widget.Interval = interval.String()
			}
			f, err := cfg.WidgetFamily()
			if err != nil {
				return err
			}
			d, err := cfg.WidgetInterval()
			if err != nil {
				return err
			}
			storage, err := cfg.OpenStorage()
			if err != nil {
				return err
			}
			defer func() {
				if err := storage.Close(); err != nil {
					log.WithField("cause", err).Warning("Could not close storage")
				}
			}()
			w := buddy.NewWidget(storage, buddy.WithWidgetKey(cfg.Key))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			if inAcme {
				return runAcme(ctx, w, f, d)
			}
			return runTUI(ctx, w, f, d)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "configuration file (default ~/lib/buddy/config.toml)")
	cmd.Flags().StringVar(&family, "family", "", "widget size: small, medium or large (default from config)")
	cmd.Flags().DurationVar(&interval, "interval", buddy.DefaultRefresh, "how often to re-read the task list")
	cmd.Flags().BoolVar(&inAcme, "acme", false, "draw in an acme window instead of the terminal")
	return cmd
}
