package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/trendpost/internal/domain"
	"github.com/doeshing/trendpost/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	root := cli.NewRootCmd(cli.Options{Verbose: isVerbose()})

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	value := os.Getenv(domain.EnvDebug)
	return strings.EqualFold(value, "1") || strings.EqualFold(value, "true")
}
