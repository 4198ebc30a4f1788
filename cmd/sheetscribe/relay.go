package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/relay"
)

var relayAddr string

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Run the local HTTPS relay that forwards prompts to the model API",
	Long: `Starts the relay used by browser-hosted clients. It accepts
POST /api/claude with {"apiKey": "...", "prompt": "..."} and answers with
{"content": "..."}. Metrics are served on /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cfg := a.cfg.RelayServerConfig()
		if relayAddr != "" {
			cfg.Addr = relayAddr
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		srv := relay.New(cfg, reg, relay.WithLogger(a.logger))
		return srv.ListenAndServe(cmd.Context())
	},
}

func init() {
	relayCmd.Flags().StringVar(&relayAddr, "addr", "", "Listen address (default from config, :3001)")
}
