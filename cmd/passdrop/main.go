package main

import (
	"os"

	"passdrop/cmd/passdrop/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
