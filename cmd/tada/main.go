package main

import (
	"os"

	"github.com/Makepad-fr/tada/internal/cli"
)

func main() {
	// Root flags, subcommands and exit codes live in the cli package.
	os.Exit(cli.Execute(cli.NewApp(), os.Args[1:]))
}
