// store.go
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

// Package store is the one read/write contract the rest of the service uses for
// persisted data. It hides whether the remote collection store is configured.
package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/localnerve/cubehub/internal/cache"
	"github.com/localnerve/cubehub/internal/models"
	"github.com/localnerve/cubehub/internal/remote"
	"github.com/localnerve/cubehub/internal/types"
)

// Languages the UI can be switched to. DefaultLanguage applies when nothing is stored.
const (
	LangEnglish     = "en"
	LangChinese     = "zh"
	DefaultLanguage = LangChinese
)

// ErrPersistenceUnavailable reports that the local cache could not be read or
// written. Remote failures never produce it.
var ErrPersistenceUnavailable = &types.CustomError{
	Code:    http.StatusServiceUnavailable,
	Message: "Local persistence is unavailable",
	Type:    "persistence.unavailable",
}

// ErrUnsupportedLanguage is returned by SetLanguage for anything but en or zh.
var ErrUnsupportedLanguage = &types.CustomError{
	Code:    http.StatusBadRequest,
	Message: "Language must be en or zh",
	Type:    "validation.language",
}

// Store is the sync facade. Both implementations keep every record in the local
// cache; the cloud implementation also reads from and writes to the remote store.
type Store interface {
	// Enabled reports whether the remote store is in use.
	Enabled() bool

	FetchAlgorithms(ctx context.Context) ([]models.Algorithm, error)
	// SaveAlgorithm writes the local mirror, then the remote when enabled.
	// The bool is the remote outcome, or true when the remote is disabled.
	SaveAlgorithm(ctx context.Context, a models.Algorithm) (bool, error)
	FetchComments(ctx context.Context) ([]models.Comment, error)
	SaveComment(ctx context.Context, c models.Comment) (bool, error)

	Users(ctx context.Context) ([]models.User, error)
	SetUsers(ctx context.Context, users []models.User) error
	CurrentUser(ctx context.Context) (*models.User, error)
	// SetCurrentUser stores the session user. nil ends the session.
	SetCurrentUser(ctx context.Context, u *models.User) error
	// UpdateUser replaces the stored user with the same id and refreshes the
	// session when it belongs to that user. Unknown ids are ignored.
	UpdateUser(ctx context.Context, u models.User) error

	Language(ctx context.Context) (string, error)
	SetLanguage(ctx context.Context, lang string) error
}

// New picks the implementation once. A nil client selects local-only mode.
func New(kv cache.Store, rc *remote.Client) Store {
	local := &localStore{kv: kv}
	if rc == nil {
		return local
	}
	return &cloudStore{localStore: local, remote: rc}
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistenceUnavailable, op, err)
}
