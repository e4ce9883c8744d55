package main

import (
	"fmt"
	"os"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
