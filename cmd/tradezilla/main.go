package main

import (
	"os"

	"github.com/rustyeddy/tradezilla/cmd/tradezilla/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
