package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"secure-calculator/internal/calculator"
)

func init() {
	for _, op := range calculator.Operations {
		rootCmd.AddCommand(newArithCmd(op))
	}
	rootCmd.AddCommand(evalCmd)
}

func newArithCmd(op calculator.Operation) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s A B", op),
		Short: fmt.Sprintf("Print A %s B", op.Symbol()),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := calculator.ParseOperand(op, "a", args[0])
			if err != nil {
				return err
			}
			b, err := calculator.ParseOperand(op, "b", args[1])
			if err != nil {
				return err
			}
			result, err := calculator.Apply(op, a, b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

var evalCmd = &cobra.Command{
	Use:     "eval EXPRESSION",
	Short:   "Evaluate an arithmetic expression",
	Long:    `Evaluate an expression built from numbers, infix operators and the add, subtract, multiply and divide functions.`,
	Example: `calc eval 'divide(add(2, 3), 4) * 2'`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := calculator.Evaluate(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}
