package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/simdup/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "simdup",
	Short: "SimHash-based near-duplicate detection",
	Long: `simdup fingerprints text records with SimHash and groups the
records whose fingerprints fall within a configured Hamming distance of
each other into near-duplicate clusters.

It uses a family of bit-block permutations to turn the Hamming-ball
search into sorted-prefix scans, so the search stays sub-linear in the
number of permutations rather than quadratic in the number of records.`,
	Version: version.Short(),
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewClusterCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		os.Exit(1)
	}
}
