// users.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/cubehub/internal/catalog"
	"github.com/localnerve/cubehub/internal/middleware"
	"github.com/localnerve/cubehub/internal/utils"
)

type UserHandler struct {
	Service *catalog.Service
}

// Register godoc
// @Summary Register a user
// @Description Usernames and emails must be unused. Does not log in.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body catalog.RegisterInput true "User"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in catalog.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	u, err := h.Service.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, u, fiber.StatusCreated)
}

// Profile godoc
// @Summary User profile
// @Description Uploads, collections, comments and follows of a user
// @Tags Users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} catalog.Profile
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{username} [get]
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	p, err := h.Service.Profile(c.UserContext(), middleware.SessionFrom(c), c.Params("username"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, p, fiber.StatusOK)
}

// MyProfile godoc
// @Summary Profile of the session user
// @Tags Users
// @Produce json
// @Success 200 {object} catalog.Profile
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /session/profile [get]
func (h *UserHandler) MyProfile(c *fiber.Ctx) error {
	p, err := h.Service.Profile(c.UserContext(), middleware.SessionFrom(c), "")
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, p, fiber.StatusOK)
}

// ToggleFollow godoc
// @Summary Follow or unfollow a user
// @Tags Users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} catalog.Session
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /users/{username}/follow [post]
func (h *UserHandler) ToggleFollow(c *fiber.Ctx) error {
	sess, err := h.Service.ToggleFollow(c.UserContext(), middleware.SessionFrom(c), c.Params("username"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, sess, fiber.StatusOK)
}

// GetSession godoc
// @Summary Current session
// @Tags Session
// @Produce json
// @Success 200 {object} catalog.Session
// @Router /session [get]
func (h *UserHandler) GetSession(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, middleware.SessionFrom(c), fiber.StatusOK)
}

type loginBody struct {
	Email string `json:"email"`
}

// Login godoc
// @Summary Log in by email
// @Description There is no password check.
// @Tags Session
// @Accept json
// @Produce json
// @Param body body loginBody true "Credentials"
// @Success 200 {object} catalog.Session
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /session [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var body loginBody
	if err := parseBody(c, &body); err != nil {
		return err
	}
	sess, err := h.Service.Login(c.UserContext(), body.Email)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, sess, fiber.StatusOK)
}

// Logout godoc
// @Summary Log out
// @Tags Session
// @Success 204
// @Router /session [delete]
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	if err := h.Service.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type languageBody struct {
	Language string `json:"language"`
}

// GetLanguage godoc
// @Summary UI language
// @Tags Settings
// @Produce json
// @Success 200 {object} languageBody
// @Router /settings/language [get]
func (h *UserHandler) GetLanguage(c *fiber.Ctx) error {
	lang, err := h.Service.Language(c.UserContext())
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, languageBody{Language: lang}, fiber.StatusOK)
}

// SetLanguage godoc
// @Summary Set the UI language
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body languageBody true "en or zh"
// @Success 200 {object} languageBody
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /settings/language [put]
func (h *UserHandler) SetLanguage(c *fiber.Ctx) error {
	var body languageBody
	if err := parseBody(c, &body); err != nil {
		return err
	}
	if err := h.Service.SetLanguage(c.UserContext(), body.Language); err != nil {
		return err
	}
	return utils.SuccessResponse(c, body, fiber.StatusOK)
}
