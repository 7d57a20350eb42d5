package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/marquee/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional, defaults to ~/.config/marquee/config.toml)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional)")
	memory := flag.Bool("memory", false, "keep trending searches in memory only")
	debug := flag.Bool("debug", false, "write debug lines to the log file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:  *configPath,
		PrefsPath:   *prefsPath,
		MemoryStore: *memory,
		Debug:       *debug,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
		return 1
	}
	return 0
}
