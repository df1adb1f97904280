package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/basalt-labs/gospread/sheet"
)

func newLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <path>",
		Short: "Replace the sheet's contents with records read from an explicit path",
		Args:  cobra.ExactArgs(1),
		RunE:  runLoad,
	}
}

func runLoad(cmd *cobra.Command, args []string) error {
	_, path, err := loadedConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	defer f.Close()

	s := sheet.New()
	if !s.Load(f) {
		return fmt.Errorf("load: %q contains a malformed record stream", args[0])
	}

	if err := persistSheet(path, s); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	if flags.noColor {
		green.DisableColor()
	}
	green.Fprintf(cmd.OutOrStdout(), "loaded %s into %s\n", args[0], path)
	return nil
}
