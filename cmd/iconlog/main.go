package main

import (
	"os"

	"github.com/ariel-frischer/iconlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
