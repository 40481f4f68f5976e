package main

import (
	"os"

	"github.com/edmv-dev/edmv/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute())
}
