// store_test.go
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

package store_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/localnerve/cubehub/internal/cache"
	"github.com/localnerve/cubehub/internal/config"
	"github.com/localnerve/cubehub/internal/models"
	"github.com/localnerve/cubehub/internal/remote"
	"github.com/localnerve/cubehub/internal/store"
	"github.com/localnerve/cubehub/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenCache fails every operation, like a full or unreachable disk.
type brokenCache struct{}

var errDisk = errors.New("disk full")

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errDisk }
func (brokenCache) Set(context.Context, string, []byte) error         { return errDisk }
func (brokenCache) Remove(context.Context, string) error              { return errDisk }
func (brokenCache) Ping(context.Context) error                        { return errDisk }
func (brokenCache) Close() error                                      { return nil }
func (brokenCache) Driver() string                                    { return "broken" }

func newCloud(t *testing.T) (store.Store, *testhelpers.FakePostgREST, cache.Store) {
	t.Helper()
	fake := testhelpers.NewFakePostgREST(t)
	kv := testhelpers.NewCache(t)
	return store.New(kv, testhelpers.NewRemote(fake)), fake, kv
}

func mirror(t *testing.T, kv cache.Store) []models.Algorithm {
	t.Helper()
	algs, _, err := cache.GetJSON[[]models.Algorithm](context.Background(), kv, cache.KeyAlgorithms)
	require.NoError(t, err)
	return algs
}

func TestDisabledRemoteNeverTouchesNetwork(t *testing.T) {
	fake := testhelpers.NewFakePostgREST(t)
	for _, cfg := range []*config.Config{
		{RemoteURL: fake.URL(), RemoteToken: ""},
		{RemoteURL: "", RemoteToken: "key"},
		{RemoteURL: fake.URL(), RemoteToken: "  "},
	} {
		s := store.New(testhelpers.NewCache(t), remote.NewForConfig(cfg))
		assert.False(t, s.Enabled())

		ok, err := s.SaveAlgorithm(context.Background(), testhelpers.Algorithm(1, "3x3", "PLL", "T Perm", "alice"))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.SaveComment(context.Background(), testhelpers.Comment(1, "alg-01", "bob", "fast"))
		require.NoError(t, err)
		assert.True(t, ok)

		algs, err := s.FetchAlgorithms(context.Background())
		require.NoError(t, err)
		assert.Len(t, algs, 1)
	}
	assert.Empty(t, fake.Requests())
}

func TestSaveAlgorithmWritesLocalFirst(t *testing.T) {
	ctx := context.Background()

	t.Run("remote accepts", func(t *testing.T) {
		s, fake, kv := newCloud(t)
		a := testhelpers.Algorithm(1, "3x3", "PLL", "T Perm", "alice")
		ok, err := s.SaveAlgorithm(ctx, a)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []models.Algorithm{a}, mirror(t, kv))
		assert.Len(t, fake.Rows("algorithms"), 1)
	})

	t.Run("remote rejects", func(t *testing.T) {
		s, fake, kv := newCloud(t)
		fake.Fail(http.StatusInternalServerError)
		a := testhelpers.Algorithm(2, "3x3", "OLL", "Sune", "bob")
		ok, err := s.SaveAlgorithm(ctx, a)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []models.Algorithm{a}, mirror(t, kv))
	})

	t.Run("remote unreachable", func(t *testing.T) {
		fake := testhelpers.NewFakePostgREST(t)
		rc := testhelpers.NewRemote(fake)
		fake.Server.Close()
		kv := testhelpers.NewCache(t)
		s := store.New(kv, rc)

		a := testhelpers.Algorithm(3, "2x2", "CLL", "Sune for 2x2", "alice")
		ok, err := s.SaveAlgorithm(ctx, a)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []models.Algorithm{a}, mirror(t, kv))
	})
}

func TestFetchAlgorithmsFallsBackToMirror(t *testing.T) {
	ctx := context.Background()
	s, fake, kv := newCloud(t)

	local := testhelpers.Catalog()[:2]
	require.NoError(t, cache.SetJSON(ctx, kv, cache.KeyAlgorithms, local))
	fake.Put(t, "algorithms", testhelpers.Catalog()[3])

	got, err := s.FetchAlgorithms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Algorithm{testhelpers.Catalog()[3]}, got)

	fake.Fail(http.StatusServiceUnavailable)
	got, err = s.FetchAlgorithms(ctx)
	require.NoError(t, err)
	assert.Equal(t, local, got)
}

func TestFetchAlgorithmsServesRowsWithoutZone(t *testing.T) {
	ctx := context.Background()
	s, fake, kv := newCloud(t)

	require.NoError(t, cache.SetJSON(ctx, kv, cache.KeyAlgorithms, []models.Algorithm{
		testhelpers.Algorithm(9, "3x3", "OLL", "LocalOnly", "alice"),
	}))
	fake.PutRaw(t, "algorithms", `[{"id":"alg-01","cube_type":"3x3","title":"T Perm","category":"PLL","algorithm":"R U R' U'","contributor":"alice","created_at":"2024-01-02T03:04:05.123"}]`)

	got, err := s.FetchAlgorithms(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alg-01", got[0].ID)
	assert.Equal(t, 2024, got[0].CreatedAt.Year())
}

func TestFetchCommentsEmptyOnFailure(t *testing.T) {
	ctx := context.Background()
	s, fake, _ := newCloud(t)

	ok, err := s.SaveComment(ctx, testhelpers.Comment(1, "alg-01", "bob", "fast"))
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.FetchComments(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	fake.Fail(http.StatusBadGateway)
	got, err = s.FetchComments(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUsersStayLocal(t *testing.T) {
	ctx := context.Background()
	s, fake, _ := newCloud(t)

	alice := models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	bob := models.User{ID: "u2", Username: "bob", Email: "bob@example.com"}
	require.NoError(t, s.SetUsers(ctx, []models.User{alice, bob}))
	require.NoError(t, s.SetCurrentUser(ctx, &alice))

	alice.Collections = []string{"alg-01"}
	require.NoError(t, s.UpdateUser(ctx, alice))

	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alg-01"}, users[0].Collections)
	assert.Empty(t, users[1].Collections)

	current, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, []string{"alg-01"}, current.Collections)

	// Updating someone else leaves the session alone.
	bob.Following = []string{"alice"}
	require.NoError(t, s.UpdateUser(ctx, bob))
	current, err = s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, current.Following)

	// Unknown ids are ignored.
	require.NoError(t, s.UpdateUser(ctx, models.User{ID: "ghost", Username: "ghost"}))
	users, err = s.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, s.SetCurrentUser(ctx, nil))
	current, err = s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	assert.Empty(t, fake.Requests())
}

func TestUpdateUserRefreshesSessionMissingFromList(t *testing.T) {
	ctx := context.Background()
	s := store.New(testhelpers.NewCache(t), nil)

	carol := models.User{ID: "u3", Username: "carol", Email: "carol@example.com", Collections: []string{}}
	require.NoError(t, s.SetCurrentUser(ctx, &carol))

	carol.Collections = []string{"42"}
	require.NoError(t, s.UpdateUser(ctx, carol))

	current, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, []string{"42"}, current.Collections)

	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users, "the list is not extended")
}

func TestLanguageReadsBareCode(t *testing.T) {
	ctx := context.Background()
	kv := testhelpers.NewCache(t)
	s := store.New(kv, nil)

	require.NoError(t, kv.Set(ctx, cache.KeyLanguage, []byte("en")))
	lang, err := s.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.LangEnglish, lang)

	require.NoError(t, kv.Set(ctx, cache.KeyLanguage, []byte("fr")))
	lang, err = s.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.DefaultLanguage, lang)
}

func TestLanguage(t *testing.T) {
	ctx := context.Background()
	s := store.New(testhelpers.NewCache(t), nil)

	lang, err := s.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.DefaultLanguage, lang)

	require.NoError(t, s.SetLanguage(ctx, store.LangEnglish))
	lang, err = s.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "en", lang)

	assert.ErrorIs(t, s.SetLanguage(ctx, "fr"), store.ErrUnsupportedLanguage)
}

func TestLocalFailureIsPersistenceUnavailable(t *testing.T) {
	ctx := context.Background()
	fake := testhelpers.NewFakePostgREST(t)
	s := store.New(brokenCache{}, testhelpers.NewRemote(fake))

	ok, err := s.SaveAlgorithm(ctx, testhelpers.Algorithm(1, "3x3", "PLL", "T Perm", "alice"))
	assert.False(t, ok)
	assert.ErrorIs(t, err, store.ErrPersistenceUnavailable)
	assert.ErrorIs(t, err, errDisk)
	assert.Empty(t, fake.Requests(), "remote must not be tried when the local write fails")

	_, err = s.Users(ctx)
	assert.ErrorIs(t, err, store.ErrPersistenceUnavailable)
	assert.ErrorIs(t, s.SetCurrentUser(ctx, nil), store.ErrPersistenceUnavailable)
}
