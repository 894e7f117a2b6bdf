package main

import (
	"github.com/aretw0/ctmdp/internal/cli"
	"github.com/spf13/cobra"
)

var morphCmd = &cobra.Command{
	Use:   "morph <source> <target>",
	Short: "Check that a map is a morphism",
	Long:  `Checks that the state and action map (identity by default) preserves every reward and pushes every transition measure forward exactly.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mapPath, _ := cmd.Flags().GetString("map")
		tol, _ := cmd.Flags().GetFloat64("tolerance")
		return cli.Check(cli.CheckOptions{
			SourcePath: args[0],
			TargetPath: args[1],
			MapPath:    mapPath,
			Tolerance:  tol,
			Out:        cmd.OutOrStdout(),
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <source> <candidate> [candidate...]",
	Short: "Find the candidate closest to the source",
	Long:  `Scores random state and action maps from the source into each candidate and reports the best one.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		trials, _ := cmd.Flags().GetInt("trials")
		seed, _ := cmd.Flags().GetUint64("seed")
		metric, _ := cmd.Flags().GetString("metric")
		mapOut, _ := cmd.Flags().GetString("map-output")
		return cli.Search(cli.SearchOptions{
			SourcePath:     args[0],
			CandidatePaths: args[1:],
			Trials:         trials,
			Seed:           seed,
			Metric:         metric,
			MapOutput:      mapOut,
			Debug:          debugFlag(cmd),
			Out:            cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(morphCmd, searchCmd)

	morphCmd.Flags().String("map", "", "Map document (default: identity)")
	morphCmd.Flags().Float64("tolerance", 0, "Tolerance for rewards and weights (default 1e-6)")

	searchCmd.Flags().Int("trials", 10, "Random maps per candidate")
	searchCmd.Flags().Uint64("seed", 0, "Random seed (0 picks one)")
	searchCmd.Flags().String("metric", "l1", "Distribution distance: l1 or tv")
	searchCmd.Flags().String("map-output", "", "Write the best map to a file")
}
