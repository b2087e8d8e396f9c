package main

import (
	"fmt"
	"os"

	"github.com/stateful/outline/internal/cmd"
	"github.com/stateful/outline/internal/version"
)

func root() int {
	root := cmd.Root()
	root.Version = version.String()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func main() {
	os.Exit(root())
}
