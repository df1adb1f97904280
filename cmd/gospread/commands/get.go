package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/basalt-labs/gospread/internal/cellpos"
	"github.com/basalt-labs/gospread/internal/expr"
	"github.com/basalt-labs/gospread/internal/value"
)

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <addr>",
		Short: "Print a cell's evaluated value",
		Args:  cobra.ExactArgs(1),
		RunE:  runGet,
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	_, path, err := loadedConfig()
	if err != nil {
		return err
	}
	pos, err := cellpos.Parse(args[0])
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}

	s, err := openSheet(path)
	if err != nil {
		return err
	}

	v := s.GetValue(pos)
	text := formatValue(v)

	c := colorFor(v, s.IsFormula(pos))
	if flags.noColor {
		c.DisableColor()
	}
	c.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func formatValue(v value.Value) string {
	if n, ok := v.AsNumber(); ok {
		return expr.FormatNumber(n)
	}
	if s, ok := v.AsText(); ok {
		return s
	}
	return "<empty>"
}

func colorFor(v value.Value, isFormula bool) *color.Color {
	switch {
	case v.IsEmpty():
		return color.New(color.FgRed)
	case isFormula:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgWhite)
	}
}
