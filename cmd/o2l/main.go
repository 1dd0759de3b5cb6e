package main

import (
	"os"

	"github.com/o2lang/go-o2l/cmd/o2l/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
