// routes.go
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

package handlers

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/cubehub/internal/cache"
	"github.com/localnerve/cubehub/internal/catalog"
	"github.com/localnerve/cubehub/internal/middleware"
	"github.com/localnerve/cubehub/internal/remote"

	_ "github.com/localnerve/cubehub/docs/api" // Swagger docs
)

// AppOptions are the dependencies of the HTTP surface.
type AppOptions struct {
	Service *catalog.Service
	Cache   cache.Store
	Remote  *remote.Client
	// Prometheus is optional. It registers collectors globally, so tests leave it nil.
	Prometheus *fiberprometheus.FiberPrometheus
	// AccessLog enables the request logger.
	AccessLog bool
}

// NewApp builds the fiber app with every route.
func NewApp(opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
		Immutable:             true,             // params end up in stored records
		BodyLimit:             16 * 1024 * 1024, // six data-URL images
	})

	// Global middleware
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(compress.New())

	if opts.Prometheus != nil {
		opts.Prometheus.RegisterAt(app, "/metrics")
		app.Use(opts.Prometheus.Middleware)
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	health := &HealthHandler{Cache: opts.Cache, Remote: opts.Remote}
	app.Get("/health", health.Health)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())
	api.Use(middleware.Session(opts.Service))
	api.Get("/health", health.Health)

	catalogHandler := &CatalogHandler{Service: opts.Service}
	userHandler := &UserHandler{Service: opts.Service}
	auth := middleware.RequireSession()

	cat := api.Group("/catalog")
	cat.Get("/meta", catalogHandler.Meta)
	cat.Get("/algorithms", catalogHandler.Search)
	cat.Post("/algorithms", auth, catalogHandler.Upload)
	cat.Get("/algorithms/:id", catalogHandler.Detail)
	cat.Get("/algorithms/:id/comments", catalogHandler.Comments)
	cat.Post("/algorithms/:id/comments", auth, catalogHandler.AddComment)
	cat.Post("/algorithms/:id/collect", auth, catalogHandler.ToggleCollect)
	cat.Delete("/comments/:id", auth, catalogHandler.HideComment)
	cat.Post("/refresh", catalogHandler.Refresh)

	api.Post("/users", userHandler.Register)
	api.Get("/users/:username", userHandler.Profile)
	api.Post("/users/:username/follow", auth, userHandler.ToggleFollow)

	api.Get("/session", userHandler.GetSession)
	api.Post("/session", userHandler.Login)
	api.Delete("/session", userHandler.Logout)
	api.Get("/session/profile", auth, userHandler.MyProfile)

	api.Get("/settings/language", userHandler.GetLanguage)
	api.Put("/settings/language", userHandler.SetLanguage)

	// 404 handler
	app.Use(NotFound)

	return app
}
