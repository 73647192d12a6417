package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	lossrate "github.com/flywave/go-lossrate"
	"github.com/flywave/go-lossrate/internal/config"
)

var (
	verbose    bool
	configPath string

	tablePath string
	outPath   string
	fraction  float64
	decimals  int32

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lossrate",
	Short: "Adjust loss rate tables by watershed mean sand fraction",
	Long: `lossrate clips a gridded GLDAS soil sand fraction dataset to a watershed
boundary, takes the mean sand fraction inside it, and interpolates initial
abstraction and infiltration rate between the 0% and 100% sand columns of a
loss rate lookup table.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		conf := zap.NewProductionConfig()
		if verbose {
			conf.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = conf.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logger.With(zap.String("run", uuid.NewString()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute the sand fraction and write the adjusted table",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := processor()
		if err != nil {
			return err
		}
		res, err := p.Process()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sand fraction %.4f (%s), %d rows written\n", res.SandFraction, res.Source, res.Table.Len())
		return nil
	},
}

var meanCmd = &cobra.Command{
	Use:   "mean",
	Short: "Print the mean sand fraction inside the boundary",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := processor()
		if err != nil {
			return err
		}
		f, source, cells, err := p.SandFraction()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%g\t%s\t%d\n", f, source, cells)
		return nil
	},
}

var adjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Adjust a loss rate table with a known sand fraction",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !lossrate.InRange(fraction, 0, 1) {
			logger.Warn("Sand fraction outside [0, 1], interpolating anyway", zap.Float64("fraction", fraction))
		}
		t, err := lossrate.AdjustFile(tablePath, outPath, fraction, decimals)
		if err != nil {
			return err
		}
		logger.Info("Loss rate table written", zap.String("path", outPath), zap.Int("rows", t.Len()))
		return nil
	},
}

func processor() (*lossrate.Processor, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	opts := cfg.Options()
	opts.Logger = logger
	return lossrate.NewProcessor(opts), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	for _, c := range []*cobra.Command{runCmd, meanCmd} {
		c.Flags().StringVarP(&configPath, "config", "c", "lossrate.yaml", "Path to the run configuration")
	}

	adjustCmd.Flags().StringVar(&tablePath, "table", "", "Loss rate lookup table (CSV)")
	adjustCmd.Flags().StringVar(&outPath, "out", "", "Adjusted table output (CSV)")
	adjustCmd.Flags().Float64Var(&fraction, "fraction", 0, "Mean sand fraction in [0, 1]")
	adjustCmd.Flags().Int32Var(&decimals, "decimals", 2, "Decimal places of the output")
	_ = adjustCmd.MarkFlagRequired("table")
	_ = adjustCmd.MarkFlagRequired("out")
	_ = adjustCmd.MarkFlagRequired("fraction")

	rootCmd.AddCommand(runCmd, meanCmd, adjustCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
