package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"github.com/gogpu/gg"

	"OverlayBoard/internal/config"
	"OverlayBoard/internal/logging"
	remote "OverlayBoard/internal/net"
	"OverlayBoard/internal/overlay"
	"OverlayBoard/internal/ui"
)

const discoverTimeout = 3 * time.Second

func main() {
	args := os.Args[1:]
	var err error
	if len(args) > 0 && args[0] == "remote" {
		err = runRemote(args[1:])
	} else {
		err = runOverlay(args)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "overlayboard:", err)
		os.Exit(1)
	}
}

func runOverlay(args []string) error {
	fs := flag.NewFlagSet("overlayboard", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML config file")
	pagePath := fs.String("page", "", "image shown under the overlay")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(log)
	gg.SetLogger(log.With("component", "gg"))
	log.Info("starting overlay", "config", *configPath, "export_dir", cfg.ExportDir)

	a := ui.NewApp()
	session := overlay.NewSession(cfg, overlay.WithScheduler(ui.Schedule), overlay.WithLogger(log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Remote.Enabled {
		startRemote(ctx, cfg.Remote, session, log)
	}

	if *configPath != "" {
		w, err := config.NewWatcher(*configPath, config.DefaultWatchDebounce,
			func(c config.Config) { fyne.Do(func() { session.ApplyConfig(c) }) },
			func(err error) { log.Warn("config reload failed", "err", err) })
		if err != nil {
			log.Warn("config watch disabled", "err", err)
		} else {
			w.Start()
			defer w.Stop()
		}
	}

	return ui.RunApp(a, session, *pagePath, log)
}

func startRemote(ctx context.Context, rc config.Remote, session *overlay.Session, log *slog.Logger) {
	srv := remote.NewCommandServer(ui.SyncDispatcher(session), log)
	go func() {
		if err := srv.ListenAndServe(ctx, rc.Port); err != nil {
			log.Error("remote control stopped", "err", err)
		}
	}()

	if rc.Advertise {
		mdnsServer, err := remote.Advertise(rc.Instance, rc.Port)
		if err != nil {
			log.Warn("mdns advertise failed", "err", err)
		} else {
			go func() {
				<-ctx.Done()
				mdnsServer.Shutdown()
			}()
		}
	}
	log.Info("remote control enabled", "url", remote.ControlURL(remote.OutgoingIP(), rc.Port))
}

func runRemote(args []string) error {
	fs := flag.NewFlagSet("remote", flag.ExitOnError)
	addr := fs.String("addr", "", "overlay host:port (discovered with mDNS when empty)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: overlayboard remote [-addr host:port] <command> [arg]\ncommands: %s\n",
			strings.Join(overlay.CommandNames(), ", "))
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}

	target := *addr
	if target == "" {
		found, err := remote.Discover(discoverTimeout)
		if err != nil {
			return err
		}
		target = found
	}

	req := remote.Request{Command: fs.Arg(0), Arg: strings.Join(fs.Args()[1:], " ")}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	reply, err := remote.Send(ctx, target, req)
	if err != nil {
		return err
	}
	fmt.Println(reply.Result)
	return nil
}
