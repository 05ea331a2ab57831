package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func watchCmd(flags *globalFlags) *cobra.Command {
	var (
		output      string
		metricsAddr string
		debounce    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run reasoning whenever an ontology document changes",
		Long: `Watch runs the reasoner once, then again after every change to a
YAML document under the config root. Each run rewrites --output (or
stdout) and, when configured, the fact store and NATS. Reasoner
metrics are served on /metrics when an address is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			if metricsAddr != "" {
				app.cfg.Metrics.Addr = metricsAddr
			}

			ctx := cmd.Context()
			if err := app.Connect(ctx); err != nil {
				return err
			}
			defer app.Close(ctx)

			if app.cfg.Metrics.Addr != "" {
				srv := app.metricsServer()
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						app.logger.Error("Metrics server failed", "error", err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
				app.logger.Info("Serving metrics", "addr", app.cfg.Metrics.Addr)
			}

			w, err := newDocumentWatcher(app, flags.iri, output, debounce)
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write each export to this file instead of stdout")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Listen address for /metrics (overrides metrics.addr)")
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Quiet period before re-running")
	return cmd
}

// metricsServer exposes the app's Prometheus registry.
func (a *App) metricsServer() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// documentWatcher re-runs reasoning when documents change.
type documentWatcher struct {
	app      *App
	iri      string
	output   string
	debounce time.Duration
	fsw      *fsnotify.Watcher

	// Debouncing: collect changes before re-running
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
}

func newDocumentWatcher(app *App, iri, output string, debounce time.Duration) (*documentWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	return &documentWatcher{
		app:      app,
		iri:      iri,
		output:   output,
		debounce: debounce,
		fsw:      fsw,
		pending:  make(map[string]fsnotify.Op),
	}, nil
}

// Run reasons once and then after every batch of document changes until
// ctx is cancelled.
func (w *documentWatcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	if err := w.addWatchesRecursive(w.app.cfg.Root); err != nil {
		return err
	}
	w.runOnce(ctx)

	w.app.logger.Info("Watching ontology documents",
		"root", w.app.cfg.Root,
		"debounce", w.debounce)

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleFSEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.app.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			if w.takePending() > 0 {
				w.runOnce(ctx)
			}
		}
	}
}

func isDocument(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func skipDir(path string) bool {
	base := filepath.Base(path)
	return base == "vendor" || base == "node_modules" || (strings.HasPrefix(base, ".") && base != ".")
}

// addWatchesRecursive adds watches to all directories under root
func (w *documentWatcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.app.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// handleFSEvent records document changes and watches new directories.
func (w *documentWatcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if !isDocument(path) {
		if event.Has(fsnotify.Create) && !skipDir(path) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				if err := w.addWatchesRecursive(path); err != nil {
					w.app.logger.Warn("Failed to watch new directory", "path", path, "error", err)
				}
			}
		}
		return
	}
	if event.Op == fsnotify.Chmod {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.app.logger.Debug("Document change detected", "path", path, "op", event.Op.String())
}

// takePending clears the pending set and returns how many paths it held.
func (w *documentWatcher) takePending() int {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	n := len(w.pending)
	w.pending = make(map[string]fsnotify.Op)
	return n
}

// runOnce performs one reasoning run. Failures are logged so that a broken
// document does not stop the watch.
func (w *documentWatcher) runOnce(ctx context.Context) {
	docs, err := w.app.Documents(nil)
	if err != nil {
		w.app.logger.Error("Failed to resolve documents", "error", err)
		return
	}

	if w.output != "" {
		f, err := os.Create(w.output)
		if err != nil {
			w.app.logger.Error("Failed to open output", "path", w.output, "error", err)
			return
		}
		defer f.Close()
		w.app.out = f
	}

	if _, err := w.app.Reason(ctx, w.iri, docs); err != nil {
		w.app.logger.Error("Reasoning run failed", "error", err)
	}
}
