// Package main is the entry point for the docs-crawler CLI.
package main

import (
	cmd "github.com/rohmanhakim/docs-crawler/internal/cli"
)

func main() {
	cmd.Execute()
}
