// cache_test.go
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

package cache_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/localnerve/cubehub/internal/cache"
	"github.com/localnerve/cubehub/internal/config"
	"github.com/localnerve/cubehub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) cache.Store {
	t.Helper()
	cfg := &config.Config{
		CacheDriver:       "gorm",
		DBType:            "sqlite",
		DBDatabase:        filepath.Join(t.TempDir(), "cache.db"),
		DBConnectionLimit: 1,
	}
	s, err := cache.NewForConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGormStoreRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	_, found, err := s.Get(ctx, cache.KeyLanguage)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, cache.KeyLanguage, []byte(`"en"`)))
	raw, found, err := s.Get(ctx, cache.KeyLanguage)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `"en"`, string(raw))

	// Second write takes the upsert path.
	require.NoError(t, s.Set(ctx, cache.KeyLanguage, []byte(`"zh"`)))
	raw, _, err = s.Get(ctx, cache.KeyLanguage)
	require.NoError(t, err)
	assert.JSONEq(t, `"zh"`, string(raw))

	require.NoError(t, s.Remove(ctx, cache.KeyLanguage))
	_, found, err = s.Get(ctx, cache.KeyLanguage)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, s.Remove(ctx, "never-written"))
	assert.NoError(t, s.Ping(ctx))
	assert.Equal(t, "gorm/sqlite", s.Driver())
}

func TestJSONHelpers(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	users, found, err := cache.GetJSON[[]models.User](ctx, s, cache.KeyUsers)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, users)

	in := []models.User{{ID: "u1", Username: "alice", Email: "a@x.io", Following: []string{}, Collections: []string{"a1"}}}
	require.NoError(t, cache.SetJSON(ctx, s, cache.KeyUsers, in))

	out, found, err := cache.GetJSON[[]models.User](ctx, s, cache.KeyUsers)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetJSONCorruptValue(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, cache.KeyAlgorithms, []byte(`{"not":"a list"}`)))
	_, _, err := cache.GetJSON[[]models.Algorithm](ctx, s, cache.KeyAlgorithms)
	assert.ErrorIs(t, err, cache.ErrUnavailable)
}

func TestNewForConfigRejectsUnknownDriver(t *testing.T) {
	_, err := cache.NewForConfig(context.Background(), &config.Config{CacheDriver: "memcached"})
	assert.ErrorContains(t, err, "unsupported cache driver")
}

func TestConnectRejectsUnknownDialect(t *testing.T) {
	_, err := cache.Connect(&config.Config{DBType: "oracle"})
	assert.ErrorContains(t, err, "unsupported database type")
}
