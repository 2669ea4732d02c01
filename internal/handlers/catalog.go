// catalog.go
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
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/cubehub/internal/catalog"
	"github.com/localnerve/cubehub/internal/middleware"
	"github.com/localnerve/cubehub/internal/models"
	"github.com/localnerve/cubehub/internal/utils"
)

type CatalogHandler struct {
	Service *catalog.Service
}

// MetaResponse lists the choices a client offers when filtering or uploading.
type MetaResponse struct {
	CubeTypes    []string `json:"cube_types"`
	Categories   []string `json:"categories"`
	MaxImages    int      `json:"max_images"`
	CloudEnabled bool     `json:"cloud_enabled"`
}

// Meta godoc
// @Summary Catalog metadata
// @Description Cube types, categories and whether records are shared remotely
// @Tags Catalog
// @Produce json
// @Success 200 {object} MetaResponse
// @Router /catalog/meta [get]
func (h *CatalogHandler) Meta(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, MetaResponse{
		CubeTypes:    models.CubeTypes,
		Categories:   models.Categories,
		MaxImages:    models.MaxImages,
		CloudEnabled: h.Service.CloudEnabled(),
	}, fiber.StatusOK)
}

// Search godoc
// @Summary Search algorithms
// @Description Case-insensitive search over title, notation and contributor
// @Tags Catalog
// @Produce json
// @Param q query string false "Search term"
// @Param category query string false "Category or All"
// @Param cube_type query string false "Cube type or All"
// @Success 200 {array} models.Algorithm
// @Router /catalog/algorithms [get]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	algs := h.Service.Search(catalog.Filter{
		Term:     c.Query("q"),
		Category: queryValue(c, "category"),
		CubeType: queryValue(c, "cube_type"),
	})
	return utils.SuccessResponse(c, algs, fiber.StatusOK)
}

// Upload godoc
// @Summary Upload an algorithm
// @Description Saves locally, then to the remote store when configured. 202 means the remote did not accept it.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body catalog.UploadInput true "Algorithm"
// @Success 201 {object} utils.MutationResponseStruct
// @Success 202 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /catalog/algorithms [post]
func (h *CatalogHandler) Upload(c *fiber.Ctx) error {
	var in catalog.UploadInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	saved, err := h.Service.Upload(c.UserContext(), middleware.SessionFrom(c), in)
	if err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, saved.Record, saved.Synced)
}

// Detail godoc
// @Summary Algorithm detail
// @Tags Catalog
// @Produce json
// @Param id path string true "Algorithm ID"
// @Success 200 {object} catalog.Detail
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/algorithms/{id} [get]
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	d, err := h.Service.Detail(middleware.SessionFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, d, fiber.StatusOK)
}

// Comments godoc
// @Summary Comments of an algorithm, newest first
// @Tags Catalog
// @Produce json
// @Param id path string true "Algorithm ID"
// @Success 200 {array} models.Comment
// @Router /catalog/algorithms/{id}/comments [get]
func (h *CatalogHandler) Comments(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, h.Service.Comments(c.Params("id")), fiber.StatusOK)
}

type commentBody struct {
	Content string `json:"content"`
}

// AddComment godoc
// @Summary Comment on an algorithm
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Algorithm ID"
// @Param body body commentBody true "Comment"
// @Success 201 {object} utils.MutationResponseStruct
// @Success 202 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/algorithms/{id}/comments [post]
func (h *CatalogHandler) AddComment(c *fiber.Ctx) error {
	var body commentBody
	if err := parseBody(c, &body); err != nil {
		return err
	}
	saved, err := h.Service.AddComment(c.UserContext(), middleware.SessionFrom(c), c.Params("id"), body.Content)
	if err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, saved.Record, saved.Synced)
}

// ToggleCollect godoc
// @Summary Add or remove an algorithm from the session user's collections
// @Tags Catalog
// @Produce json
// @Param id path string true "Algorithm ID"
// @Success 200 {object} catalog.Session
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /catalog/algorithms/{id}/collect [post]
func (h *CatalogHandler) ToggleCollect(c *fiber.Ctx) error {
	sess, err := h.Service.ToggleCollect(c.UserContext(), middleware.SessionFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, sess, fiber.StatusOK)
}

// HideComment godoc
// @Summary Hide one of your comments
// @Description Removes the comment from this service's view. Stored copies are kept.
// @Tags Catalog
// @Param id path string true "Comment ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/comments/{id} [delete]
func (h *CatalogHandler) HideComment(c *fiber.Ctx) error {
	if err := h.Service.HideComment(c.UserContext(), middleware.SessionFrom(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Refresh godoc
// @Summary Reload the catalog from the store
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /catalog/refresh [post]
func (h *CatalogHandler) Refresh(c *fiber.Ctx) error {
	if err := h.Service.Load(c.UserContext()); err != nil {
		return err
	}
	snap := h.Service.Snapshot()
	return utils.SuccessResponse(c, fiber.Map{
		"algorithms": len(snap.Algorithms()),
		"comments":   len(snap.Comments()),
		"loaded_at":  snap.LoadedAt().UTC().Format(time.RFC3339),
	}, fiber.StatusOK)
}
