// serve.go
//
// A community catalog service for speedcubing algorithms
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of cubehub.
// cubehub is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// cubehub is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with cubehub.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/localnerve/cubehub/internal/config"
	"github.com/localnerve/cubehub/internal/handlers"
	"github.com/spf13/cobra"
)

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	d, err := openDeps(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	// Serve whatever loads; a broken cache shows in /health.
	if err := d.service.Load(ctx); err != nil {
		slog.Error("Initial catalog load failed", "error", err)
	}

	app := handlers.NewApp(handlers.AppOptions{
		Service:    d.service,
		Cache:      d.kv,
		Remote:     d.remote,
		Prometheus: fiberprometheus.New(config.ServiceName),
		AccessLog:  true,
	})

	listen := addr
	if listen == "" {
		listen = ":" + d.cfg.Port
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", listen, "cloud", d.store.Enabled(), "cache", d.kv.Driver())
		errCh <- app.Listen(listen)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("Gracefully shutting down", "signal", sig.String())
		if err := app.ShutdownWithContext(context.Background()); err != nil {
			return err
		}
	}
	slog.Info("Server stopped")
	return nil
}
