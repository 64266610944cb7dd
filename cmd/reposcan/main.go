package main

import (
	"os"

	"github.com/Berachem/reposcan/cmd/reposcan/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(2)
	}
}
