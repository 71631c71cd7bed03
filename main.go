package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Slayer366/gptokeyb2/internal/config"
	"github.com/Slayer366/gptokeyb2/internal/hub"
	"github.com/Slayer366/gptokeyb2/internal/server"
	"github.com/Slayer366/gptokeyb2/internal/watch"
)

// Cross-platform signal handling: use os.Interrupt on all platforms
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

type options struct {
	paths      []string
	configOnly bool
	dump       bool
	check      bool
	debug      bool
	serve      string
}

func parseOptions(args []string) (*options, error) {
	flags := pflag.NewFlagSet("gptokeyb2", pflag.ContinueOnError)
	flags.StringArrayP("config", "c", nil, "controls file to load, may be repeated")
	flags.Bool("config-only", false, "only read [config] settings, ignore controls")
	flags.Bool("dump", false, "print the loaded profiles")
	flags.Bool("check", false, "report state actions naming missing profiles")
	flags.Bool("debug", false, "log ignored and unrecognized input")
	flags.String("serve", "", "serve the profiles over HTTP on this address and reload on change")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("GPTK2")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	opts := &options{
		paths:      append(v.GetStringSlice("config"), flags.Args()...),
		configOnly: v.GetBool("config-only"),
		dump:       v.GetBool("dump"),
		check:      v.GetBool("check"),
		debug:      v.GetBool("debug"),
		serve:      v.GetString("serve"),
	}
	if len(opts.paths) == 0 {
		return nil, errors.New("no controls file given")
	}
	return opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "gptokeyb2: %v\n", err)
		os.Exit(2)
	}

	os.Exit(run(opts))
}

func run(opts *options) int {
	store := config.NewStore(config.WithDebug(opts.debug))
	defer store.Close()

	loader := config.NewLoader(store, config.WithConfigSink(func(name, value string) {
		if opts.debug {
			log.Printf("[DEBUG] setting %s = %s", name, value)
		}
	}))
	for _, path := range opts.paths {
		if err := loader.LoadFile(path, opts.configOnly); err != nil {
			fmt.Fprintf(os.Stderr, "Can't load '%s'\n", path)
			if opts.debug {
				log.Printf("[DEBUG] %v", err)
			}
			return 1
		}
	}

	status := 0
	if opts.check {
		for _, err := range store.CheckMaps() {
			fmt.Fprintln(os.Stderr, err)
			status = 1
		}
	}

	if opts.dump {
		if err := store.Dump(os.Stdout); err != nil {
			log.Printf("Dump failed: %v", err)
			return 1
		}
	}

	if opts.serve != "" {
		if err := serve(opts); err != nil {
			log.Printf("HTTP server error: %v", err)
			return 1
		}
	}
	return status
}

func serve(opts *options) error {
	// Create cancellable context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)
	defer signal.Stop(sigCh)

	reloader := watch.NewReloader(opts.paths, opts.configOnly, watch.WithDebug(opts.debug))
	if _, err := reloader.Reload(); err != nil {
		return err
	}

	h := hub.NewHub()
	go h.Run(ctx)

	broadcaster := hub.NewBroadcaster(h, reloader.Changes())
	go broadcaster.Run(ctx)

	srv := server.New(h, broadcaster, reloader, opts.serve)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		if err := reloader.Run(ctx); err != nil {
			log.Printf("Watcher stopped: %v", err)
		}
	}()

	log.Printf("gptokeyb2 serving %d file(s) on %s", len(opts.paths), opts.serve)
	log.Println("Press Ctrl+C to exit")

	var serveErr error
	select {
	case <-sigCh:
		log.Println("Shutting down...")
	case err := <-serverErrCh:
		serveErr = err
	}
	cancel()
	<-watchDone

	// Shutdown the HTTP server gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	return serveErr
}
