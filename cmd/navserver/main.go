// Command navserver serves polygon pathfinding over HTTP.
//
// It holds one scene (a walkable area with obstacles, loaded from GeoJSON)
// and answers route queries against it. Walkers started over a WebSocket
// move through the scene and block other routes while they do.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	w := newWorld(cfg, log)
	if cfg.Scene.Path != "" {
		data, err := os.ReadFile(cfg.Scene.Path)
		if err != nil {
			return fmt.Errorf("read scene: %w", err)
		}
		if _, err := w.loadScene(data); err != nil {
			return fmt.Errorf("%s: %w", cfg.Scene.Path, err)
		}
		log.Info("scene preloaded", zap.String("path", cfg.Scene.Path))
	} else {
		log.Info("no scene configured, POST /scene to load one")
	}

	l, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return err
	}
	log.Info("listening", zap.String("addr", l.Addr().String()))

	hs := &http.Server{
		Handler:           newServer(w, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- hs.Serve(l)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to serve", zap.Error(err))
		}
	case sig := <-sigs:
		log.Info("terminating", zap.Stringer("signal", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return hs.Shutdown(ctx)
}

// parseFlags loads the config file named by -config and applies the
// flags given explicitly on top of it.
func parseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("navserver", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	listen := fs.String("listen", "", "listen address")
	logFile := fs.String("log-file", "", "rotating JSON log file")
	logLevel := fs.String("log-level", "", "log level")
	scenePath := fs.String("scene", "", "GeoJSON scene to load at startup")
	inflate := fs.Float64("inflate", 0, "corner clearance")
	waypointDist := fs.Float64("waypoint-distance", 0, "minimum distance between waypoints")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.Listen = *listen
		case "log-file":
			cfg.Log.File = *logFile
		case "log-level":
			cfg.Log.Level = *logLevel
		case "scene":
			cfg.Scene.Path = *scenePath
		case "inflate":
			cfg.Nav.InflateAmount = *inflate
		case "waypoint-distance":
			cfg.Nav.MinWaypointDistance = *waypointDist
		}
	})
	return cfg, nil
}
