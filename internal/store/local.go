// local.go
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

package store

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"

	"github.com/localnerve/cubehub/internal/cache"
	"github.com/localnerve/cubehub/internal/models"
)

// localStore keeps everything in the cache. The mutex serializes the
// read-modify-write cycles, each of which touches a whole key.
type localStore struct {
	mu sync.Mutex
	kv cache.Store
}

func (s *localStore) Enabled() bool { return false }

func (s *localStore) FetchAlgorithms(ctx context.Context) ([]models.Algorithm, error) {
	return s.algorithms(ctx)
}

func (s *localStore) SaveAlgorithm(ctx context.Context, a models.Algorithm) (bool, error) {
	if err := s.appendAlgorithm(ctx, a); err != nil {
		return false, err
	}
	return true, nil
}

func (s *localStore) FetchComments(ctx context.Context) ([]models.Comment, error) {
	return s.comments(ctx)
}

func (s *localStore) SaveComment(ctx context.Context, c models.Comment) (bool, error) {
	if err := s.appendComment(ctx, c); err != nil {
		return false, err
	}
	return true, nil
}

func (s *localStore) algorithms(ctx context.Context) ([]models.Algorithm, error) {
	algs, err := readList[models.Algorithm](ctx, s.kv, cache.KeyAlgorithms)
	if err != nil {
		return nil, persistenceError("read algorithms", err)
	}
	return algs, nil
}

func (s *localStore) comments(ctx context.Context) ([]models.Comment, error) {
	comments, err := readList[models.Comment](ctx, s.kv, cache.KeyComments)
	if err != nil {
		return nil, persistenceError("read comments", err)
	}
	return comments, nil
}

func (s *localStore) appendAlgorithm(ctx context.Context, a models.Algorithm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	algs, err := s.algorithms(ctx)
	if err != nil {
		return err
	}
	if err := cache.SetJSON(ctx, s.kv, cache.KeyAlgorithms, append(algs, a)); err != nil {
		return persistenceError("write algorithms", err)
	}
	return nil
}

func (s *localStore) appendComment(ctx context.Context, c models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comments, err := s.comments(ctx)
	if err != nil {
		return err
	}
	if err := cache.SetJSON(ctx, s.kv, cache.KeyComments, append(comments, c)); err != nil {
		return persistenceError("write comments", err)
	}
	return nil
}

func (s *localStore) Users(ctx context.Context) ([]models.User, error) {
	users, err := readList[models.User](ctx, s.kv, cache.KeyUsers)
	if err != nil {
		return nil, persistenceError("read users", err)
	}
	return users, nil
}

func (s *localStore) SetUsers(ctx context.Context, users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if users == nil {
		users = []models.User{}
	}
	if err := cache.SetJSON(ctx, s.kv, cache.KeyUsers, users); err != nil {
		return persistenceError("write users", err)
	}
	return nil
}

func (s *localStore) CurrentUser(ctx context.Context) (*models.User, error) {
	u, found, err := cache.GetJSON[*models.User](ctx, s.kv, cache.KeyCurrentUser)
	if err != nil {
		return nil, persistenceError("read session", err)
	}
	if !found || u == nil {
		return nil, nil
	}
	clone := u.Clone()
	return &clone, nil
}

func (s *localStore) SetCurrentUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCurrentUser(ctx, u)
}

func (s *localStore) setCurrentUser(ctx context.Context, u *models.User) error {
	if u == nil {
		if err := s.kv.Remove(ctx, cache.KeyCurrentUser); err != nil {
			return persistenceError("clear session", err)
		}
		return nil
	}
	if err := cache.SetJSON(ctx, s.kv, cache.KeyCurrentUser, u.Clone()); err != nil {
		return persistenceError("write session", err)
	}
	return nil
}

func (s *localStore) UpdateUser(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.Users(ctx)
	if err != nil {
		return err
	}
	updated := u.Clone()
	if i := slices.IndexFunc(users, func(x models.User) bool { return x.ID == u.ID }); i >= 0 {
		users[i] = updated
		if err := cache.SetJSON(ctx, s.kv, cache.KeyUsers, users); err != nil {
			return persistenceError("write users", err)
		}
	}

	// The session is refreshed even when the list has no entry for it.
	current, err := s.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if current != nil && current.ID == u.ID {
		return s.setCurrentUser(ctx, &updated)
	}
	return nil
}

func (s *localStore) Language(ctx context.Context) (string, error) {
	raw, found, err := s.kv.Get(ctx, cache.KeyLanguage)
	if err != nil {
		return "", persistenceError("read language", err)
	}
	if !found {
		return DefaultLanguage, nil
	}
	// The browser build stored the bare code, not a JSON string.
	var lang string
	if err := json.Unmarshal(raw, &lang); err != nil {
		lang = strings.TrimSpace(string(raw))
	}
	if lang != LangEnglish && lang != LangChinese {
		return DefaultLanguage, nil
	}
	return lang, nil
}

func (s *localStore) SetLanguage(ctx context.Context, lang string) error {
	if lang != LangEnglish && lang != LangChinese {
		return ErrUnsupportedLanguage
	}
	if err := cache.SetJSON(ctx, s.kv, cache.KeyLanguage, lang); err != nil {
		return persistenceError("write language", err)
	}
	return nil
}

// readList returns an empty, non-nil slice for a missing key.
func readList[T any](ctx context.Context, kv cache.Store, key string) ([]T, error) {
	list, _, err := cache.GetJSON[[]T](ctx, kv, key)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}
