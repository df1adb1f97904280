package commands

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/basalt-labs/gospread/internal/cellpos"
)

func newCopyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <dst> <src> <width> <height>",
		Short: "Copy a rectangle of cells, rewriting relative references",
		Args:  cobra.ExactArgs(4),
		RunE:  runCopy,
	}
}

func runCopy(cmd *cobra.Command, args []string) error {
	_, path, err := loadedConfig()
	if err != nil {
		return err
	}

	dst, err := cellpos.Parse(args[0])
	if err != nil {
		return fmt.Errorf("copy: dst: %w", err)
	}
	src, err := cellpos.Parse(args[1])
	if err != nil {
		return fmt.Errorf("copy: src: %w", err)
	}
	w, err := strconv.Atoi(args[2])
	if err != nil || w <= 0 {
		return fmt.Errorf("copy: width must be a positive integer, got %q", args[2])
	}
	h, err := strconv.Atoi(args[3])
	if err != nil || h <= 0 {
		return fmt.Errorf("copy: height must be a positive integer, got %q", args[3])
	}

	s, err := openSheet(path)
	if err != nil {
		return err
	}

	s.CopyRect(dst, src, w, h)

	if err := persistSheet(path, s); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	if flags.noColor {
		green.DisableColor()
	}
	green.Fprintf(cmd.OutOrStdout(), "copied %dx%d from %s to %s\n", w, h, args[1], args[0])
	return nil
}
