package main

import (
	"github.com/aretw0/ctmdp/internal/cli"
	"github.com/spf13/cobra"
)

func productCmd(kind, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind + " <model> <model> [model...]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			output, _ := cmd.Flags().GetString("output")
			sep, _ := cmd.Flags().GetString("separator")
			return cli.Product(cli.ProductOptions{
				Kind:      kind,
				Paths:     args,
				Name:      name,
				Separator: sep,
				Output:    output,
				Debug:     debugFlag(cmd),
				Out:       cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().String("name", "", "Name of the resulting model")
	cmd.Flags().StringP("output", "o", "", "Write the result to a file instead of stdout")
	cmd.Flags().String("separator", "", "Separator joining action labels (cartesian)")
	return cmd
}

var quotientCmd = &cobra.Command{
	Use:   "quotient <model>",
	Short: "Collapse bisimilar states",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tol, _ := cmd.Flags().GetFloat64("tolerance")
		rewards, _ := cmd.Flags().GetBool("rewards")
		output, _ := cmd.Flags().GetString("output")
		return cli.Quotient(cli.QuotientOptions{
			Path:            args[0],
			Tolerance:       tol,
			RewardSensitive: rewards,
			Output:          output,
			Debug:           debugFlag(cmd),
			Out:             cmd.OutOrStdout(),
		})
	},
}

var twistCmd = &cobra.Command{
	Use:   "twist <model>",
	Short: "Synchronize a model with a deterministic automaton",
	Long:  `Builds the reachable product of the model with the automaton; states whose automaton component accepts become goals.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		aut, _ := cmd.Flags().GetString("automaton")
		labeling, _ := cmd.Flags().GetString("labeling")
		initial, _ := cmd.Flags().GetString("initial")
		output, _ := cmd.Flags().GetString("output")
		return cli.Twist(cli.TwistOptions{
			Path:          args[0],
			AutomatonPath: aut,
			LabelingPath:  labeling,
			Initial:       initial,
			Output:        output,
			Debug:         debugFlag(cmd),
			Out:           cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(
		productCmd("box", "Box product: one operand moves per step"),
		productCmd("cartesian", "Cartesian product: all operands move together"),
		quotientCmd,
		twistCmd,
	)

	quotientCmd.Flags().Float64("tolerance", 0, "Largest mass difference treated as equal (default 1e-9)")
	quotientCmd.Flags().Bool("rewards", false, "Only merge states whose rewards agree")
	quotientCmd.Flags().StringP("output", "o", "", "Write the result to a file instead of stdout")

	twistCmd.Flags().String("automaton", "", "Automaton document")
	twistCmd.Flags().String("labeling", "", "Labeling document")
	twistCmd.Flags().String("initial", "", "Initial base state (default: first state)")
	twistCmd.Flags().StringP("output", "o", "", "Write the result to a file instead of stdout")
	_ = twistCmd.MarkFlagRequired("automaton")
	_ = twistCmd.MarkFlagRequired("labeling")
}
