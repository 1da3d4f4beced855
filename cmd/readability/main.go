package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/zombar/readability-analyzer/internal/cli"
	"github.com/zombar/readability-analyzer/internal/version"
)

func main() {
	if err := fang.Execute(context.Background(), cli.NewRootCmd(), fang.WithVersion(version.Version), fang.WithCommit(version.Commit)); err != nil {
		os.Exit(1)
	}
}
