package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vanguard-ops/vanguard/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	backend := flag.String("backend", "", "backend base URL (overrides config and env)")
	pollMS := flag.Int("poll", 0, "poll interval in milliseconds (optional, defaults to 5000)")
	proxyAddr := flag.String("proxy", "", "also serve the API reverse proxy on this address (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Backend:    *backend,
		ProxyAddr:  *proxyAddr,
	}
	if poll := *pollMS; poll > 0 {
		opts.PollMS = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "vanguard: %v\n", err)
		return 1
	}
	return 0
}
