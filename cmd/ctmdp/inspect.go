package main

import (
	"github.com/aretw0/ctmdp/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <model>",
	Short: "Summarize a model",
	Long:  `Prints a table of states, actions, rewards and targets. Rendered with glamour on a terminal, raw markdown otherwise.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		partition, _ := cmd.Flags().GetBool("partition")
		return cli.Inspect(cli.InspectOptions{
			Path:      args[0],
			Partition: partition,
			Out:       cmd.OutOrStdout(),
		})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <model>",
	Short: "Check a model for consistency",
	Long:  `Builds the model, then crawls from the start state and reports unreachable states and non-goal states without actions.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetString("start")
		return cli.Validate(cli.ValidateOptions{
			Path:  args[0],
			Start: start,
			Out:   cmd.OutOrStdout(),
		})
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph <model>",
	Short: "Export the model as a Mermaid diagram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		partition, _ := cmd.Flags().GetBool("partition")
		highlight, _ := cmd.Flags().GetStringSlice("highlight")
		return cli.Graph(cli.GraphOptions{
			Path:      args[0],
			Partition: partition,
			Highlight: highlight,
			Out:       cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd, validateCmd, graphCmd)

	inspectCmd.Flags().Bool("partition", false, "Also list the bisimulation blocks")
	validateCmd.Flags().String("start", "", "Start state (default: first state)")
	graphCmd.Flags().Bool("partition", false, "Group states by bisimulation block")
	graphCmd.Flags().StringSlice("highlight", nil, "States to highlight")
}
