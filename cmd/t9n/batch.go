package main

import (
	"fmt"
	"io"

	"github.com/NethermindEth/t9n/batch"
	"github.com/NethermindEth/t9n/metrics"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func BatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Validate many transaction files concurrently",
		Long: `This subcommand validates every given JSON transaction and prints one verdict per file.
Files that cannot be decoded or hashed are reported as rejected and do not stop the run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBatch,
	}
	cmd.Flags().String(publicKeyF, defaultPublicKey, publicKeyUsage)
	cmd.Flags().Int(workersF, defaultWorkers, workersUsage)
	cmd.Flags().String(metricsTextfileF, defaultMetricsTextfile, metricsTextfileUsage)
	addValidatorFlags(cmd)

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	v, err := newValidator(cfg, log)
	if err != nil {
		return err
	}

	registry := metrics.PrometheusRegistry()
	v.WithMetrics(metrics.NewValidation(metrics.PrometheusFactory(registry)))

	outcomes, err := batch.Run(cmd.Context(), args, v, cfg.Workers)
	if err != nil {
		return errors.Wrap(err, "batch")
	}

	summary := batch.Summarize(outcomes)
	log.Infow("Batch validated", "valid", summary.Valid, "invalid", summary.Invalid, "rejected", summary.Rejected)

	if cfg.MetricsTextfile != "" {
		if err = metrics.WriteTextfile(registry, cfg.MetricsTextfile); err != nil {
			return errors.Wrap(err, "write metrics")
		}
	}

	reports := make([]validationReport, len(outcomes))
	for i, outcome := range outcomes {
		reports[i] = newValidationReport(outcome.Path, outcome.Result, outcome.Err)
	}
	return render(cmd.OutOrStdout(), cfg.Output, reports, func(w io.Writer) error {
		writeBatchTable(w, outcomes, summary)
		return nil
	})
}

func writeBatchTable(w io.Writer, outcomes []batch.Outcome, summary batch.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"File", "Type", "Version", "Verdict", "Hash"})
	for i := range outcomes {
		outcome := &outcomes[i]
		txType, version, hash := "-", "-", "-"
		if res := outcome.Result; res != nil {
			if res.Type != 0 {
				txType, version = res.Type.String(), fmt.Sprintf("0x%x", res.Version)
			}
			if res.Hash != nil {
				hash = res.Hash.String()
			}
		}
		table.Append([]string{outcome.Path, txType, version, string(outcome.Verdict()), hash})
	}
	table.SetFooter([]string{
		"Total",
		fmt.Sprintf("%d valid", summary.Valid),
		fmt.Sprintf("%d invalid", summary.Invalid),
		fmt.Sprintf("%d rejected", summary.Rejected),
		"",
	})
	table.Render()
}
