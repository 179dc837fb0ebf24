package main

import (
	"github.com/skim-search/skim-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
