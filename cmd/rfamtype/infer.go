package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rnatools/rfamtype/classify"
	"github.com/rnatools/rfamtype/config"
	"github.com/rnatools/rfamtype/metrics"
	"github.com/rnatools/rfamtype/ontology"
	"github.com/rnatools/rfamtype/output"
	"github.com/rnatools/rfamtype/rfam"
)

func inferCmd(opts *rootOptions) *cobra.Command {
	var (
		familiesPath string
		linksPath    string
		ontologyPath string
		curationPath string
		outputPath   string
		formatName   string
	)

	cmd := &cobra.Command{
		Use:   "infer",
		Short: "Assign INSDC RNA types to Rfam families",
		Long: `Infer reads the Rfam family and database_link dumps, the Sequence
Ontology, and the curated overrides, runs the rule cascade over every
family, and writes one row per family.

Families with data-integrity problems (an attached ontology term the
ontology file does not define) are logged and skipped; they do not fail
the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			// Flags override config file values
			if familiesPath != "" {
				cfg.Inputs.Families = familiesPath
			}
			if linksPath != "" {
				cfg.Inputs.Links = linksPath
			}
			if ontologyPath != "" {
				cfg.Inputs.Ontology = ontologyPath
			}
			if curationPath != "" {
				cfg.Inputs.Curation = curationPath
			}
			if outputPath != "" {
				cfg.Output.Path = outputPath
			}
			if formatName != "" {
				cfg.Output.Format = formatName
			}

			logger := setupLogger(cfg.Log)
			return runInfer(cfg, logger)
		},
	}

	cmd.Flags().StringVar(&familiesPath, "families", "", "Path to the Rfam family dump")
	cmd.Flags().StringVar(&linksPath, "links", "", "Path to the Rfam database_link dump")
	cmd.Flags().StringVar(&ontologyPath, "ontology", "", "Path to the Sequence Ontology OBO file")
	cmd.Flags().StringVar(&curationPath, "curation", "", "Path to the curated-overrides JSON file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&formatName, "format", "", "Output format (csv, tsv)")

	return cmd
}

func runInfer(cfg *config.Config, logger *slog.Logger) error {
	runID := uuid.NewString()
	logger = logger.With(slog.String("run_id", runID))

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	graph, err := ontology.LoadGraph(cfg.Inputs.Ontology)
	if err != nil {
		return fmt.Errorf("load ontology: %w", err)
	}
	logger.Info("Loaded ontology",
		slog.String("path", cfg.Inputs.Ontology),
		slog.Int("terms", graph.Len()))

	curation, err := classify.LoadCuration(cfg.Inputs.Curation)
	if err != nil {
		return fmt.Errorf("load curation: %w", err)
	}

	families, err := rfam.LoadFamilies(cfg.Inputs.Families, cfg.Inputs.Links)
	if err != nil {
		return fmt.Errorf("load families: %w", err)
	}
	logger.Info("Loaded families",
		slog.String("path", cfg.Inputs.Families),
		slog.Int("count", len(families)))

	classifier, err := classify.New(curation, graph)
	if err != nil {
		return fmt.Errorf("create classifier: %w", err)
	}

	summary := metrics.NewSummary(runID)
	results, faults := classifier.ClassifyAll(families)
	for _, res := range results {
		summary.Observe(res)
	}
	for _, fault := range faults {
		summary.ObserveFault()
		logger.Error("Family skipped",
			slog.String("family", fault.Accession),
			slog.String("error", fault.Err.Error()))
	}

	if err := writeResults(cfg.Output.Path, format, results); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	summary.Finish()
	summary.Log(logger)

	pushSummary(cfg.Metrics, summary, logger)
	return nil
}

// writeResults writes all rows to the output path, or stdout when the
// path is empty.
func writeResults(path string, format output.Format, results []classify.Result) error {
	if path == "" {
		w, err := output.NewWriter(os.Stdout, format)
		if err != nil {
			return err
		}
		return w.WriteAll(results)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	w, err := output.NewWriter(f, format)
	if err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// pushSummary delivers run metrics when a gateway is configured. Push
// failures are warnings: the run already produced its output.
func pushSummary(cfg config.MetricsConfig, summary *metrics.Summary, logger *slog.Logger) {
	if cfg.Gateway == "" {
		return
	}

	pusher, err := metrics.NewPusher(cfg.Gateway, cfg.Job)
	if err != nil {
		logger.Warn("Metrics push skipped", slog.String("error", err.Error()))
		return
	}
	if err := pusher.Push(summary); err != nil {
		logger.Warn("Metrics push failed", slog.String("error", err.Error()))
		return
	}
	logger.Debug("Metrics pushed", slog.String("gateway", cfg.Gateway))
}
