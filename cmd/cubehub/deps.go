// deps.go
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

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/localnerve/cubehub/internal/cache"
	"github.com/localnerve/cubehub/internal/catalog"
	"github.com/localnerve/cubehub/internal/config"
	"github.com/localnerve/cubehub/internal/remote"
	"github.com/localnerve/cubehub/internal/store"
	"github.com/spf13/cobra"
)

func loadEnv(cmd *cobra.Command, args []string) error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return err
	}
	return nil
}

// deps is everything a command needs, opened from the environment.
type deps struct {
	cfg      *config.Config
	kv       cache.Store
	remote   *remote.Client
	store    store.Store
	service  *catalog.Service
	shutdown func()
}

func openDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	config.SetupLog(cfg)

	shutdown, err := config.SetupTelemetry(ctx, cfg)
	if err != nil {
		slog.Warn("Tracing setup failed, continuing without it", "error", err)
	}

	kv, err := cache.NewForConfig(ctx, cfg)
	if err != nil {
		shutdown()
		return nil, err
	}

	rc := remote.NewForConfig(cfg)
	if rc == nil {
		slog.Info("Remote store not configured, running local only")
	}
	st := store.New(kv, rc)

	return &deps{
		cfg:      cfg,
		kv:       kv,
		remote:   rc,
		store:    st,
		service:  catalog.NewService(st),
		shutdown: shutdown,
	}, nil
}

func (d *deps) Close() error {
	var result *multierror.Error
	if err := d.kv.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	d.shutdown()
	return result.ErrorOrNil()
}
