package main

import (
	"os"

	"github.com/algority/algority/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
