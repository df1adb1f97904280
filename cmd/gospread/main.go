// Command gospread is a thin CLI wrapping the sheet façade, one
// subcommand per façade operation.
package main

import (
	"log"
	"os"

	"github.com/basalt-labs/gospread/cmd/gospread/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
