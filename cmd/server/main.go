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
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/DoyleJ11/lol-gold-dashboard/internal/chart"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/config"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/ddragon"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/engine"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/httpapi"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/hub"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/liveclient"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/netaddr"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/poller"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/recorder"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/session"
)

func main() {
	os.Exit(serve())
}

// serve returns the process exit code so deferred cleanup runs first.
func serve() int {
	configPath := flag.String("config", "config.json", "path to the config file")
	debug := flag.Bool("debug", false, "read the match from "+config.DefaultDebugSnapshotFile+" instead of the game client")
	record := flag.Bool("record", false, "save every fetched match document under the records directory")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}

	log, err := newLogger(cfg.LogFile, *verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *debug, *record, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, debug, record bool, log *zap.Logger) error {
	chartOpts, err := chartOptions(cfg)
	if err != nil {
		return err
	}

	baseURL := cfg.DataDragonURL
	if baseURL == "" {
		baseURL = ddragon.DefaultBaseURL
	}
	dd := ddragon.NewClient(baseURL, ddragon.NewHTTPFetcher(cfg.ReferenceTimeout()), log.Named("ddragon"))
	ref, err := dd.Load(ctx)
	if err != nil {
		return err
	}

	var source liveclient.Source
	if debug {
		source = liveclient.FileSource{Path: config.DefaultDebugSnapshotFile}
		log.Info("reading match from file", zap.String("path", config.DefaultDebugSnapshotFile))
	} else {
		url := cfg.LiveClientURL
		if url == "" {
			url = liveclient.DefaultURL
		}
		source = liveclient.NewClient(url, cfg.LiveTimeout())
	}

	opts := session.Options{
		Perspective: engine.Perspective(cfg.Perspective),
		Highlight:   cfg.HighlightSummoner,
		Logger:      log.Named("session"),
	}
	if record {
		rec, err := recorder.New(cfg.RecordsDir)
		if err != nil {
			return err
		}
		opts.Recorder = rec
		log.Info("recording match documents", zap.String("dir", rec.Dir()))
	}
	sess := session.New(source, ref, opts)

	h := hub.NewHub(ctx)
	var refresh func()
	if cfg.PollInterval() > 0 {
		p := poller.New(sess, h.Inbox(), cfg.PollInterval(), log.Named("poller"))
		refresh = p.Refresh
		go p.Run(ctx)
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("port %d unavailable: %w", cfg.Port, err)
	}

	srv := &http.Server{
		Handler: httpapi.SetupRoutes(httpapi.Deps{
			Dashboard: sess,
			Hub:       h,
			Refresh:   refresh,
			Chart:     chartOpts,
			Logger:    log.Named("http"),
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	banner(ctx, cfg.Port, log)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func chartOptions(cfg *config.Config) (chart.Options, error) {
	opts := chart.DefaultOptions()
	font, err := chart.ParseColor(cfg.FontColor)
	if err != nil {
		return opts, fmt.Errorf("DIAGRAMM_FONT: %w", err)
	}
	bg, err := chart.ParseColor(cfg.BackgroundColor)
	if err != nil {
		return opts, fmt.Errorf("DIAGRAMM_BACKGROUND: %w", err)
	}
	opts.Font, opts.Background = font, bg
	return opts, nil
}

func banner(ctx context.Context, port int, log *zap.Logger) {
	fmt.Printf("Dashboard running on:\n  http://127.0.0.1:%d/\n", port)

	if ip, err := netaddr.LocalIP(); err == nil {
		fmt.Printf("  http://%s:%d/ (local network)\n", ip, port)
	} else {
		log.Debug("no local address", zap.Error(err))
	}

	ipCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if ip, err := netaddr.ExternalIP(ipCtx, http.DefaultClient, ""); err == nil {
		fmt.Printf("  http://%s:%d/ (external, needs port forwarding)\n", ip, port)
	} else {
		log.Debug("no external address", zap.Error(err))
	}
}

// newLogger writes JSON lines to stderr and to path.
func newLogger(path string, verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewJSONEncoder(encCfg)

	file, _, err := zap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level),
		zapcore.NewCore(enc.Clone(), file, level),
	)
	return zap.New(core), nil
}
