// cache.go
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

// Package cache is the durable local key-value store. Every key holds one whole
// JSON value that callers read, modify and write back.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/localnerve/cubehub/internal/config"
)

// Keys of the logical collections kept in the cache. The names match the keys
// the browser build wrote. Values are JSON, except that build stored the
// language as a bare code, which the store also reads.
const (
	KeyUsers       = "cubehub_users"
	KeyCurrentUser = "currentUser"
	KeyLanguage    = "cubehub_lang"
	KeyAlgorithms  = "cubehub_algorithms"
	KeyComments    = "cubehub_comments"
)

// ErrUnavailable wraps every backend failure.
var ErrUnavailable = errors.New("cache unavailable")

// Store is a string keyed JSON store.
type Store interface {
	// Get returns the raw JSON stored under key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
	// Driver names the backend, for health reports.
	Driver() string
}

// GetJSON decodes the value under key into a T. A missing key yields the zero T
// and found == false.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var out T
	raw, found, err := s.Get(ctx, key)
	if err != nil || !found {
		return out, found, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, true, fmt.Errorf("%w: decode %q: %v", ErrUnavailable, key, err)
	}
	return out, true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// NewForConfig opens the backend selected by CACHE_DRIVER.
func NewForConfig(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.CacheDriver {
	case "gorm", "":
		db, err := Connect(cfg)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db, cfg.DBType)
	case "redis":
		return NewRedisStore(ctx, cfg)
	case "mongo":
		return NewMongoStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported cache driver: %s", cfg.CacheDriver)
	}
}

func unavailable(op, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %v", ErrUnavailable, op, key, err)
}
