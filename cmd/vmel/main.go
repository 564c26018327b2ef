package main

import (
	"os"

	"github.com/msto63/vmel/cmd/vmel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
