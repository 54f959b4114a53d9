package main

import (
	"os"

	"colchester-plumber-api/cmd/quotectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
