package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/basalt-labs/gospread/internal/config"
)

// rootFlags carries the persistent flags every subcommand reads.
type rootFlags struct {
	file       string
	configFile string
	noColor    bool
}

var flags rootFlags

// NewRootCommand builds the gospread CLI: one subcommand per sheet
// façade operation (set, get, copy, save, load), all sharing a
// persistent --file flag naming the sheet's on-disk record stream.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "gospread",
		Short: "In-memory spreadsheet expression engine",
		Long:  "gospread drives the sheet façade: setCell, getValue, copyRect, save, and load, backed by a tilde-delimited record file.",
	}

	root.PersistentFlags().StringVarP(&flags.file, "file", "f", "", "sheet record file (default from config)")
	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "explicit config file path")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newSetCommand(),
		newGetCommand(),
		newCopyCommand(),
		newSaveCommand(),
		newLoadCommand(),
	)

	return root
}

// loadedConfig resolves the effective config and sheet file path for
// this invocation.
func loadedConfig() (*config.Config, string, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, "", err
	}
	path := flags.file
	if path == "" {
		path = cfg.PersistPath
	}
	return cfg, path, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
