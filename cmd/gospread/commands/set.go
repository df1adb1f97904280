package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/basalt-labs/gospread/internal/cellpos"
)

func newSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <addr> <contents>",
		Short: "Set a cell's literal or formula contents",
		Args:  cobra.ExactArgs(2),
		RunE:  runSet,
	}
	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	_, path, err := loadedConfig()
	if err != nil {
		return err
	}
	pos, err := cellpos.Parse(args[0])
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}

	s, err := openSheet(path)
	if err != nil {
		return err
	}

	if !s.SetCell(pos, args[1]) {
		red := color.New(color.FgRed)
		if flags.noColor {
			red.DisableColor()
		}
		red.Fprintf(cmd.OutOrStdout(), "rejected: %s = %q\n", args[0], args[1])
		return nil
	}

	if err := persistSheet(path, s); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	if flags.noColor {
		green.DisableColor()
	}
	green.Fprintf(cmd.OutOrStdout(), "%s = %q\n", args[0], args[1])
	return nil
}
