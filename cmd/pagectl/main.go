// Command pagectl edits the block list of one page through the page API.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/skillbanto/internal/client"
	"github.com/skillbanto/internal/editor"
	"github.com/skillbanto/internal/logger"
	"go.uber.org/zap"
)

func main() {
	defaultAPI := os.Getenv("SKILLBANTO_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}

	apiURL := flag.String("api", defaultAPI, "base URL of the page API")
	slug := flag.String("slug", "", "slug of the page to edit")
	idMode := flag.String("ids", "uuid", "block id scheme for new blocks: uuid or seq")
	timeout := flag.Duration("timeout", 15*time.Second, "timeout for each API request")
	logLevel := flag.String("log-level", "warn", "log level for diagnostics on stderr")
	flag.Parse()

	if *slug == "" {
		fmt.Fprintln(os.Stderr, "pagectl: -slug is required")
		flag.Usage()
		os.Exit(2)
	}

	var ids editor.IDAllocator
	switch *idMode {
	case "uuid":
		ids = editor.UUIDAllocator{}
	case "seq":
		ids = editor.NewSequenceAllocator(nil)
	default:
		fmt.Fprintf(os.Stderr, "pagectl: unknown -ids %q (want uuid or seq)\n", *idMode)
		os.Exit(2)
	}

	zlog, err := logger.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pagectl: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.New(*apiURL, client.WithHTTPClient(&http.Client{Timeout: *timeout}))
	session := editor.Open(ctx, api, *slug,
		editor.WithIDAllocator(ids),
		editor.WithLogger(zlog.With(zap.String("api", *apiURL))),
	)

	if err := editor.NewShell(session, os.Stdout).Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "pagectl: %v\n", err)
		os.Exit(1)
	}
}
