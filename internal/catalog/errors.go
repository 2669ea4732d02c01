// errors.go
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

package catalog

import (
	"net/http"

	"github.com/localnerve/cubehub/internal/types"
)

// Domain rejections. Compare with errors.Is; messages may be specialized.
var (
	ErrUnauthenticated = &types.CustomError{
		Code:    http.StatusUnauthorized,
		Message: "Please login first",
		Type:    "auth.required",
	}
	ErrSelfFollow = &types.CustomError{
		Code:    http.StatusBadRequest,
		Message: "You cannot follow yourself",
		Type:    "follow.self",
	}
	ErrDuplicateUsername = &types.CustomError{
		Code:    http.StatusConflict,
		Message: "Account already exists",
		Type:    "register.duplicate_username",
	}
	ErrDuplicateEmail = &types.CustomError{
		Code:    http.StatusConflict,
		Message: "Account already exists",
		Type:    "register.duplicate_email",
	}
	ErrUserNotFound = &types.CustomError{
		Code:    http.StatusNotFound,
		Message: "User not found",
		Type:    "user.not_found",
	}
	ErrAlgorithmNotFound = &types.CustomError{
		Code:    http.StatusNotFound,
		Message: "Algorithm not found",
		Type:    "algorithm.not_found",
	}
	ErrCommentNotFound = &types.CustomError{
		Code:    http.StatusNotFound,
		Message: "Comment not found",
		Type:    "comment.not_found",
	}
	ErrNotAuthor = &types.CustomError{
		Code:    http.StatusForbidden,
		Message: "Only the author can delete this comment",
		Type:    "comment.forbidden",
	}
	ErrValidation = &types.CustomError{
		Code:    http.StatusBadRequest,
		Message: "Invalid input",
		Type:    "validation",
	}
	ErrTooManyImages = &types.CustomError{
		Code:    http.StatusBadRequest,
		Message: "At most 6 images per algorithm",
		Type:    "validation.images",
	}
)
