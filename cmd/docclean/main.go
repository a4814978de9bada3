// Package main provides the command-line interface for docclean.
// It cleans HTML files or standard input and writes the results in
// various formats.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() { os.Exit(run()) }

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
