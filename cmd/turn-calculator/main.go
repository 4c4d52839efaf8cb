package main

import (
	"os"

	"github.com/yegors/mfd-calc/internal/cli"
	"github.com/yegors/mfd-calc/internal/commands"
)

var (
	// Version is injected at build time
	Version = "dev"
)

func main() {
	cmd := commands.Turn()
	cmd.Version = Version
	os.Exit(cli.Main(cmd, os.Args[1:], os.Stdout, os.Stderr))
}
