// data_service_test.go
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

package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/localnerve/cubehub/data"
	"github.com/localnerve/cubehub/internal/cache"
	"github.com/localnerve/cubehub/internal/seed"
	"github.com/localnerve/cubehub/internal/services"
	"github.com/localnerve/cubehub/internal/store"
	"github.com/localnerve/cubehub/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCatalogIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := store.New(testhelpers.NewCache(t), nil)
	cat, err := seed.Parse(data.SeedCatalog)
	require.NoError(t, err)

	first, err := services.ImportCatalog(ctx, st, cat)
	require.NoError(t, err)
	assert.Equal(t, len(cat.Users), first.Users)
	assert.Equal(t, len(cat.Algorithms), first.Algorithms)
	assert.Equal(t, first.Algorithms, first.Synced)
	assert.Zero(t, first.Skipped)

	second, err := services.ImportCatalog(ctx, st, cat)
	require.NoError(t, err)
	assert.Zero(t, second.Users)
	assert.Zero(t, second.Algorithms)
	assert.Equal(t, len(cat.Users)+len(cat.Algorithms), second.Skipped)

	exported, err := services.ExportCatalog(ctx, st)
	require.NoError(t, err)
	assert.Len(t, exported.Algorithms, len(cat.Algorithms))
	assert.Len(t, exported.Users, len(cat.Users))
}

func TestImportCatalogSkipsPaddedDuplicates(t *testing.T) {
	ctx := context.Background()
	st := store.New(testhelpers.NewCache(t), nil)

	cat := seed.Catalog{
		Users: []seed.User{{Username: "alice", Email: "alice@example.com"}},
		Algorithms: []seed.Algorithm{
			{Title: "Sune", CubeType: "3x3", Category: "OLL", Algorithm: "R U R' U R U2 R'", Contributor: "alice"},
		},
	}
	_, err := services.ImportCatalog(ctx, st, cat)
	require.NoError(t, err)

	padded := seed.Catalog{
		Users: []seed.User{
			{Username: " alice ", Email: "other@example.com"},
			{Username: "bob", Email: "  alice@example.com\n"},
		},
		Algorithms: []seed.Algorithm{
			{Title: " Sune ", CubeType: "3x3", Category: "OLL", Algorithm: "R U R' U R U2 R'", Contributor: "alice "},
		},
	}
	result, err := services.ImportCatalog(ctx, st, padded)
	require.NoError(t, err)
	assert.Zero(t, result.Users)
	assert.Zero(t, result.Algorithms)
	assert.Equal(t, 3, result.Skipped)

	users, err := st.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestImportCatalogToRemote(t *testing.T) {
	ctx := context.Background()
	fake := testhelpers.NewFakePostgREST(t)
	st := store.New(testhelpers.NewCache(t), testhelpers.NewRemote(fake))

	cat := seed.Catalog{Algorithms: []seed.Algorithm{
		{Title: "Sune", CubeType: "3x3", Category: "OLL", Algorithm: "R U R' U R U2 R'", Contributor: "alice"},
	}}
	result, err := services.ImportCatalog(ctx, st, cat)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	assert.Len(t, fake.Rows("algorithms"), 1)

	// Now the remote copy is what dedupes the second run.
	result, err = services.ImportCatalog(ctx, st, cat)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
}

func TestImportCatalogRejectsInvalid(t *testing.T) {
	st := store.New(testhelpers.NewCache(t), nil)
	_, err := services.ImportCatalog(context.Background(), st, seed.Catalog{Algorithms: []seed.Algorithm{{Title: "x"}}})
	assert.Error(t, err)
}

type failingRemove struct {
	cache.Store
}

var errRemove = errors.New("remove failed")

func (f failingRemove) Remove(ctx context.Context, key string) error {
	if key == cache.KeyComments {
		return errRemove
	}
	return f.Store.Remove(ctx, key)
}

func TestPurgeLocalData(t *testing.T) {
	ctx := context.Background()
	kv := testhelpers.NewCache(t)
	for _, key := range []string{cache.KeyAlgorithms, cache.KeyComments, cache.KeyUsers, cache.KeyLanguage} {
		require.NoError(t, kv.Set(ctx, key, []byte(`[]`)))
	}

	n, err := services.PurgeLocalData(ctx, kv, services.PurgeOptions{KeepUsers: true, KeepSettings: true})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, found, err := kv.Get(ctx, cache.KeyUsers)
	require.NoError(t, err)
	assert.True(t, found)

	n, err = services.PurgeLocalData(ctx, failingRemove{kv}, services.PurgeOptions{})
	assert.ErrorIs(t, err, errRemove)
	assert.Equal(t, 4, n)
	_, found, err = kv.Get(ctx, cache.KeyUsers)
	require.NoError(t, err)
	assert.False(t, found)
}
