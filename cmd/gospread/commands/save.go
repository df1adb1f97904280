package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <path>",
		Short: "Write the sheet's current contents to an explicit path",
		Args:  cobra.ExactArgs(1),
		RunE:  runSave,
	}
}

func runSave(cmd *cobra.Command, args []string) error {
	_, path, err := loadedConfig()
	if err != nil {
		return err
	}

	s, err := openSheet(path)
	if err != nil {
		return err
	}

	if err := persistSheet(args[0], s); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	green := color.New(color.FgGreen)
	if flags.noColor {
		green.DisableColor()
	}
	green.Fprintf(cmd.OutOrStdout(), "saved %s to %s\n", path, args[0])
	return nil
}
