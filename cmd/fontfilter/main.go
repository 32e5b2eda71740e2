package main

import (
	"os"

	"github.com/solatis/fontfilter/cmd/fontfilter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
