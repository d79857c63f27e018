// Copyright 2025 The FrappeAPI Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/i404788/frappeapi/config"
	"github.com/i404788/frappeapi/dispatch"
	"github.com/i404788/frappeapi/host"
	"github.com/i404788/frappeapi/logging"
	"github.com/i404788/frappeapi/telemetry"
)

func serveCmd() *cobra.Command {
	var (
		cfgPath  string
		listen   string
		noBanner bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo host",
		Long: `Start the demo inventory host.

Settings load from defaults, then the config file (if given), then
FRAPPEAPI_* environment variables, later layers overriding earlier
ones per key.

Examples:
  frappeapid serve
  frappeapid serve --config=frappeapi.yaml
  frappeapid serve --listen=:9000 --no-banner`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfgPath, listen, noBanner)
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a YAML/JSON/TOML settings file")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address override (e.g. :9000)")
	cmd.Flags().BoolVar(&noBanner, "no-banner", false, "Suppress the startup banner")

	return cmd
}

func runServe(cfgPath, listenOverride string, noBanner bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfgOpts []config.Option
	if cfgPath != "" {
		cfgOpts = append(cfgOpts, config.WithFile(cfgPath))
	}
	cfgOpts = append(cfgOpts, config.WithEnv("FRAPPEAPI_"))

	settings, err := config.LoadSettings(ctx, cfgOpts...)
	if err != nil {
		return err
	}
	if listenOverride != "" {
		settings.Listen = listenOverride
	}

	log := logging.MustNew(settings.LoggerOptions()...)

	// The app is built before the host exists; ApplyWhitelist replays
	// its dotted registrations into the freshly made whitelist.
	app := newDemoApp(log)
	wl := host.NewWhitelist()
	app.ApplyWhitelist(wl)

	h, err := host.New(host.NewDottedDispatcher(wl),
		host.WithLogger(log),
		host.WithFormatter(app.ErrorFormatter(settings.Formatter())),
	)
	if err != nil {
		return err
	}

	set := dispatch.NewAppSet()
	set.Register(app)

	dispatchOpts := []dispatch.Option{
		dispatch.WithLogger(log),
		dispatch.WithAPIPrefix(settings.APIPrefix),
		dispatch.WithMethodPrefix(settings.MethodPrefix),
	}

	var rec *telemetry.Recorder
	if settings.Telemetry.Enabled {
		rec = telemetry.MustNew(
			telemetry.WithServiceName(settings.Telemetry.ServiceName),
			telemetry.WithServiceVersion(version),
		)
		dispatchOpts = append(dispatchOpts, dispatch.WithRecorder(rec))
	}

	if _, err := dispatch.Install(h, set, dispatchOpts...); err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if rec != nil {
		r.Handle(settings.Telemetry.MetricsPath, rec.Handler())
	}
	r.Handle("/*", h)

	if settings.Banner && !noBanner {
		app.PrintBanner(os.Stdout, settings.Listen)
	}

	srv := &http.Server{
		Addr:              settings.Listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", settings.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if rec != nil {
		if err := rec.Shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown failed", "error", err.Error())
		}
	}
	return srv.Shutdown(shutdownCtx)
}
