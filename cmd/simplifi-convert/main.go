package main

import (
	"os"

	"github.com/damon-houk/simplifi-csv-converter/internal/commands"
)

func main() {
	if err := commands.NewRootCommand(nil).Execute(); err != nil {
		os.Exit(1)
	}
}
