package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	ErrBadArguments   = errors.New("Incorrect operands.")
	ErrNoCommand      = errors.New("Please enter a command.")
	ErrUnknownCommand = errors.New("No command with that name exists.")
)

// ExactArgs accepts exactly n operands.
func ExactArgs(n int) cobra.PositionalArgs {
	return RangeArgs(n, n)
}

// NoArgs accepts no operands.
func NoArgs() cobra.PositionalArgs {
	return RangeArgs(0, 0)
}

// RangeArgs accepts between lo and hi operands inclusive.
func RangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || len(args) > hi {
			return fmt.Errorf("%w: %s takes %s, got %d", ErrBadArguments, cmd.Name(), describe(lo, hi), len(args))
		}
		return nil
	}
}

func describe(lo, hi int) string {
	switch {
	case lo == hi && lo == 1:
		return "1 operand"
	case lo == hi:
		return fmt.Sprintf("%d operands", lo)
	default:
		return fmt.Sprintf("%d to %d operands", lo, hi)
	}
}
