// Package main is the entry point for the shuddhi CLI.
package main

import (
	"os"

	"github.com/indusnlp/shuddhi/cmd/shuddhi/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
