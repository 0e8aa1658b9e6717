// Command calcpdf generates the PDF reports of the calculation application.
//
// # Installation
//
//	go install github.com/lvillar/calcpdf/cmd/calcpdf@latest
//
// # Usage
//
//	calcpdf render calculation --data data.yaml --id 12
//	calcpdf render states --data data.yaml --out states.pdf
//	calcpdf template offer.yaml --watch
//	calcpdf merge offer.pdf calculation-12.pdf plan.pdf
//	calcpdf serve --data data.yaml --addr :8080
//	calcpdf mcp --data data.yaml
//	calcpdf kinds
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lvillar/calcpdf/internal/cli"
)

var version = "dev" // set by ldflags during build

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
