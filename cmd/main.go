// TouchRelay - phone as a remote mouse and keyboard
// Serves a touch page on the LAN and replays its input events on this desktop
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"touchrelay/internal/api"
	"touchrelay/internal/assets"
	"touchrelay/internal/autostart"
	"touchrelay/internal/config"
	"touchrelay/internal/input"
	"touchrelay/internal/logging"
	"touchrelay/internal/network"
	"touchrelay/internal/osutils"
	"touchrelay/internal/relay"
	"touchrelay/internal/tray"
)

const (
	appName         = "TouchRelay"
	appID           = "touchrelay"
	shutdownTimeout = 5 * time.Second
)

var (
	version     = "0.1.0"
	configPath  = flag.String("config", "", "Path to config.json (default: per-user config directory)")
	port        = flag.Int("port", 0, "Listen port (overrides config)")
	host        = flag.String("host", "", "Listen IPv4 address (overrides config)")
	noTray      = flag.Bool("no-tray", false, "Run without the system tray icon")
	showVer     = flag.Bool("version", false, "Show version")
	writeConfig = flag.Bool("write-config", false, "Write the effective configuration to disk and exit")
	testInput   = flag.Bool("test-input", false, "Move the pointer in a small square to check input injection")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("touchrelay version %s\n", version)
		return
	}

	cfgMgr, err := config.NewManager(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	loadErr := cfgMgr.Load()

	cfg := cfgMgr.Get()
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *noTray {
		cfg.Tray.Enabled = false
	}
	if err := cfgMgr.Set(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(os.Stderr, logging.ResolveLevel(cfg.Log.Level), cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid logging configuration: %v\n", err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	if loadErr != nil {
		logger.Warn("failed to load config, using defaults", "path", cfgMgr.Path(), "error", loadErr)
	}

	if *writeConfig {
		if err := cfgMgr.Save(); err != nil {
			logger.Error("failed to write config", "path", cfgMgr.Path(), "error", err)
			os.Exit(1)
		}
		fmt.Println(cfgMgr.Path())
		return
	}

	if *testInput {
		if err := runInputTest(logger); err != nil {
			logger.Error("input test failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runService(cfgMgr.Get(), logger); err != nil {
		logger.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

func runService(cfg config.Config, logger *slog.Logger) error {
	logger.Info("TouchRelay starting", "version", version, "os", runtime.GOOS)

	if cfg.Server.FirewallRule && runtime.GOOS == "windows" {
		go func() {
			if err := osutils.EnsureFirewallRule(appName, cfg.Server.Port, logger); err != nil {
				logger.Warn("firewall rule not applied", "error", err)
			}
		}()
	}

	server := api.NewServer(cfg.Server, input.New, logger)
	if err := server.Listen(); err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve()
	}()

	pageURL, browserURL := accessURLs(cfg.Server, logger)
	logger.Info("open this address on your phone", "url", pageURL)

	if cfg.OpenBrowserOnStart {
		if err := osutils.OpenURL(browserURL); err != nil {
			logger.Warn("failed to open browser", "url", browserURL, "error", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if cfg.Tray.Enabled {
		t := tray.New(appName, fmt.Sprintf("%s - %s", appName, pageURL), assets.Icon())
		ctrl := tray.NewController(browserURL, autostart.New(appName, appID), t.Stop, logger)
		tray.Install(t, ctrl)

		go func() {
			select {
			case <-sigCh:
				logger.Info("shutting down")
			case err := <-serveErr:
				// keep the error for the shutdown path
				serveErr <- err
			}
			t.Stop()
		}()

		logger.Info("TouchRelay running in the system tray")
		t.Run()
	} else {
		logger.Info("TouchRelay running. Press Ctrl+C to stop.")
		select {
		case <-sigCh:
			logger.Info("shutting down")
		case err := <-serveErr:
			serveErr <- err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := server.Shutdown(ctx)

	select {
	case err := <-serveErr:
		return errors.Join(err, shutdownErr)
	case <-ctx.Done():
		return errors.Join(ctx.Err(), shutdownErr)
	}
}

// accessURLs returns the URL to show for phones and the one to open locally.
// Without a LAN address the shown URL carries a placeholder.
func accessURLs(cfg config.ServerConfig, logger *slog.Logger) (page, browser string) {
	if cfg.Host != "" && cfg.Host != "0.0.0.0" {
		u := network.FormatURL(cfg.Host, cfg.Port)
		return u, u
	}

	u, err := network.AccessURL(cfg.Port)
	if err != nil {
		logger.Warn("no local IPv4 address found", "error", err)
		return fmt.Sprintf("http://<PC_IP>:%d/", cfg.Port), network.FormatURL("127.0.0.1", cfg.Port)
	}
	return u, u
}

func runInputTest(logger *slog.Logger) error {
	act, err := input.New()
	if err != nil {
		return fmt.Errorf("%w: %w", relay.ErrActuatorConstruction, err)
	}
	defer act.Close()

	logger.Info("moving the pointer in a 100px square")
	for _, d := range [][2]int32{{100, 0}, {0, 100}, {-100, 0}, {0, -100}} {
		if err := act.InjectMouseMove(d[0], d[1]); err != nil {
			return err
		}
		time.Sleep(250 * time.Millisecond)
	}
	logger.Info("input test complete")
	return nil
}
