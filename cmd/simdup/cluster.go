package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/simdup/app"
	"github.com/ludo-technologies/simdup/domain"
	"github.com/ludo-technologies/simdup/internal/config"
	"github.com/ludo-technologies/simdup/internal/constants"
	"github.com/ludo-technologies/simdup/service"
)

// ClusterCommand handles the "cluster" CLI command: fingerprint records,
// search for near-duplicate matches, and write clusters.
type ClusterCommand struct {
	blocks     int
	distance   int
	input      string
	format     string
	output     string
	textColumn string
	idColumn   string
	sample     int
	window     int
	workers    int
	configFile string
	progress   bool
}

// NewClusterCommand creates a new cluster command with the reference
// binary's defaults.
func NewClusterCommand() *ClusterCommand {
	return &ClusterCommand{
		textColumn: constants.DefaultTextColumn,
		idColumn:   constants.DefaultIDColumn,
		window:     constants.DefaultWindow,
		workers:    constants.DefaultWorkers,
		output:     "-",
	}
}

// CreateCobraCommand creates the cobra command for clustering.
func (c *ClusterCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Group near-duplicate records by SimHash distance",
		Long: `Read fingerprints or raw text records, find every pair whose
SimHash fingerprints fall within the configured Hamming distance, and
group the transitively-connected pairs into clusters.

Examples:
  # Cluster pre-computed hashes from a TSV file
  simdup cluster --blocks 16 --distance 3 --input hashes.tsv --format hash --output clusters.tsv

  # Cluster raw text records from JSON lines on stdin
  simdup cluster -b 16 -d 3 -i - -f json --text-column body --output -`,
		RunE: c.runCluster,
	}

	cmd.Flags().IntVarP(&c.blocks, "blocks", "b", 0, "Number of bit blocks to partition the fingerprint into (required)")
	cmd.Flags().IntVarP(&c.distance, "distance", "d", 0, "Maximum Hamming distance for a match (required)")
	cmd.Flags().StringVarP(&c.input, "input", "i", "", "Input path, or '-' for stdin (required)")
	cmd.Flags().StringVarP(&c.format, "format", "f", "", "Input format: hash or json (required)")
	cmd.Flags().StringVarP(&c.output, "output", "o", c.output, "Output path, or '-' for stdout")
	cmd.Flags().StringVar(&c.textColumn, "text-column", c.textColumn, "Column holding text to fingerprint (json format)")
	cmd.Flags().StringVar(&c.idColumn, "id-column", c.idColumn, "Column holding the record id")
	cmd.Flags().IntVar(&c.sample, "sample", 0, "Number of records to sample; 0 reads everything")
	cmd.Flags().IntVar(&c.window, "window", c.window, "Sliding window width, in runes, for text tokenization")
	cmd.Flags().IntVar(&c.workers, "workers", c.workers, "Worker goroutines for the permutation search; 0 uses one per CPU")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Path to a .simdup.toml configuration file")
	cmd.Flags().BoolVar(&c.progress, "progress", true, "Show a progress bar on interactive terminals")

	return cmd
}

func (c *ClusterCommand) runCluster(cmd *cobra.Command, args []string) error {
	explicit := GetExplicitFlags(cmd)

	cfgPath := c.configFile
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			cfgPath = config.NewLoader().Find(wd)
		}
	}
	fileCfg, err := config.NewLoader().Load(cfgPath)
	if err != nil {
		return newExitCodeError(7, fmt.Errorf("failed to load config %s: %w", cfgPath, err))
	}
	c.applyConfigDefaults(fileCfg, explicit)

	if c.blocks <= 0 {
		return newExitCodeError(2, fmt.Errorf("blocks must be provided and > 0"))
	}
	if c.distance <= 0 {
		return newExitCodeError(3, fmt.Errorf("distance must be provided and > 0"))
	}
	if c.input == "" {
		return newExitCodeError(4, fmt.Errorf("input must be provided and non-empty"))
	}
	if c.output == "" {
		return newExitCodeError(5, fmt.Errorf("output must be provided and non-empty"))
	}
	if c.blocks <= c.distance {
		return newExitCodeError(6, fmt.Errorf("blocks (%d) must be greater than distance (%d)", c.blocks, c.distance))
	}
	inputFormat, err := domain.ParseInputFormat(c.format)
	if err != nil {
		return newExitCodeError(7, err)
	}

	req := &domain.ClusterRequest{
		InputPath:  c.input,
		Format:     inputFormat,
		TextColumn: c.textColumn,
		IDColumn:   c.idColumn,
		Window:     c.window,
		Blocks:     c.blocks,
		Distance:   c.distance,
		Workers:    c.workers,
		Sample:     c.sample,
		OutputPath: outputPathOrEmpty(c.output),
		NoProgress: !c.progress,
		ConfigPath: cfgPath,
	}

	useCase, err := c.createUseCase(cmd)
	if err != nil {
		return fmt.Errorf("failed to build cluster use case: %w", err)
	}

	resp, err := useCase.Execute(context.Background(), req)
	if err != nil {
		var domainErr domain.DomainError
		if isOutputError(err, &domainErr) {
			return newExitCodeError(8, err)
		}
		if domainErr.Code == domain.ErrCodeFileNotFound {
			return newExitCodeError(7, err)
		}
		categorizer := service.NewErrorCategorizer()
		categorized := categorizer.Categorize(err)
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", categorized.Category, categorized.Message)
		for _, s := range categorizer.GetRecoverySuggestions(categorized.Category) {
			fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", s)
		}
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Found %d clusters from %d records (%d matches) in %s\n",
		len(resp.Clusters), resp.RecordCount, resp.MatchCount, resp.Duration)
	return nil
}

func isOutputError(err error, target *domain.DomainError) bool {
	for err != nil {
		if de, ok := err.(domain.DomainError); ok {
			*target = de
			return de.Code == domain.ErrCodeOutputError
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func outputPathOrEmpty(output string) string {
	if output == "-" {
		return ""
	}
	return output
}

// applyConfigDefaults merges file-config values into any flag the user
// didn't pass explicitly, via a FlagTracker seeded from the flags cobra
// observed on the command line.
func (c *ClusterCommand) applyConfigDefaults(cfg *config.Config, explicit map[string]bool) {
	tracker := config.NewFlagTrackerWithFlags(explicit)

	if cfg.Blocks > 0 {
		c.blocks = tracker.MergeInt(cfg.Blocks, c.blocks, "blocks")
	}
	if cfg.Distance > 0 {
		c.distance = tracker.MergeInt(cfg.Distance, c.distance, "distance")
	}
	if cfg.Format != "" {
		c.format = tracker.MergeString(cfg.Format, c.format, "format")
	}
	if cfg.TextColumn != "" {
		c.textColumn = tracker.MergeString(cfg.TextColumn, c.textColumn, "text-column")
	}
	if cfg.IDColumn != "" {
		c.idColumn = tracker.MergeString(cfg.IDColumn, c.idColumn, "id-column")
	}
	if cfg.Window > 0 {
		c.window = tracker.MergeInt(cfg.Window, c.window, "window")
	}
	if cfg.Sample > 0 {
		c.sample = tracker.MergeInt(cfg.Sample, c.sample, "sample")
	}
	if cfg.Workers > 0 {
		c.workers = tracker.MergeInt(cfg.Workers, c.workers, "workers")
	}
	if cfg.Progress != nil {
		c.progress = tracker.MergeBool(*cfg.Progress, c.progress, "progress")
	}
}

func (c *ClusterCommand) createUseCase(cmd *cobra.Command) (*app.ClusterUseCase, error) {
	progress := service.NewProgressManager()
	if c.progress {
		progress.SetWriter(cmd.ErrOrStderr())
	} else {
		progress.SetWriter(io.Discard)
	}

	return app.NewClusterUseCaseBuilder().
		WithService(service.NewClusterService()).
		WithReader(service.NewInputReader()).
		WithFormatter(service.NewClusterFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		WithProgress(progress).
		Build()
}

// NewClusterCmd creates and returns the cluster cobra command.
func NewClusterCmd() *cobra.Command {
	return NewClusterCommand().CreateCobraCommand()
}
