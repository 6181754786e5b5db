package main

import (
	"os"

	"github.com/Eursukkul/restaurant-ledger/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
