// session.go
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

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/cubehub/internal/catalog"
)

const sessionKey = "session"

// Session loads the stored session once per request.
func Session(svc *catalog.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := svc.Session(c.UserContext())
		if err != nil {
			return err
		}
		c.Locals(sessionKey, sess)
		return c.Next()
	}
}

// RequireSession rejects the request unless somebody is logged in.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !SessionFrom(c).Authenticated() {
			return catalog.ErrUnauthenticated
		}
		return c.Next()
	}
}

// SessionFrom returns the session loaded by Session, or an anonymous one.
func SessionFrom(c *fiber.Ctx) catalog.Session {
	sess, _ := c.Locals(sessionKey).(catalog.Session)
	return sess
}
