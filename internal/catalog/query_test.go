// query_test.go
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

package catalog_test

import (
	"testing"
	"time"

	"github.com/localnerve/cubehub/internal/catalog"
	"github.com/localnerve/cubehub/internal/models"
	"github.com/localnerve/cubehub/internal/testhelpers"
	"github.com/localnerve/cubehub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTermMatching(t *testing.T) {
	algs := []models.Algorithm{
		{ID: "1", Title: "Sune", Algorithm: "R U R' U R U2 R'", Contributor: "alice", CubeType: "3x3", Category: "OLL"},
		{ID: "2", Title: "Niklas", Algorithm: "R U' L' U R' U' L", Contributor: "bob", CubeType: "3x3", Category: "Custom"},
	}

	for _, term := range []string{"sune", "SUNE", "Sune", "alice", "ALI"} {
		got := catalog.Search(algs, catalog.Filter{Term: term})
		require.Len(t, got, 1, term)
		assert.Equal(t, "1", got[0].ID, term)
	}

	got := catalog.Search(algs, catalog.Filter{Term: "zzz"})
	assert.NotNil(t, got)
	assert.Empty(t, got)

	// Notation is searched too.
	got = catalog.Search(algs, catalog.Filter{Term: "l' u r'"})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	assert.Len(t, catalog.Search(algs, catalog.Filter{}), 2)
}

func TestSearchFacets(t *testing.T) {
	algs := testhelpers.Catalog()

	cases := []struct {
		name   string
		filter catalog.Filter
		want   []string
	}{
		{"all cube types", catalog.Filter{CubeType: "All"}, []string{"alg-01", "alg-02", "alg-03", "alg-04"}},
		{"3x3 only", catalog.Filter{CubeType: "3x3"}, []string{"alg-01", "alg-02"}},
		{"category", catalog.Filter{Category: "CLL"}, []string{"alg-03"}},
		{"all categories lowercase", catalog.Filter{Category: "all", CubeType: "2x2"}, []string{"alg-03"}},
		{"term and type", catalog.Filter{Term: "sune", CubeType: "3x3"}, []string{"alg-02"}},
		{"no match", catalog.Filter{CubeType: "Megaminx"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ids := []string{}
			for _, a := range catalog.Search(algs, tc.filter) {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestCommentsForScopesAndSorts(t *testing.T) {
	comments := []models.Comment{
		{ID: "a", AlgorithmID: "1", CreateTime: "2025/3/1 10:00:00"},
		{ID: "b", AlgorithmID: "2", CreateTime: "2025/3/1 11:00:00"},
		{ID: "c", AlgorithmID: "1", CreateTime: "2025/3/1 12:00:00"},
		{ID: "d", AlgorithmID: "1", CreateTime: "2025/3/1 09:00:00"},
	}
	got := catalog.CommentsFor(comments, "1")
	ids := []string{}
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"c", "a", "d"}, ids)
	assert.Empty(t, catalog.CommentsFor(comments, "3"))
}

func TestCommentsForPrefersTimestamps(t *testing.T) {
	// Display strings sort the wrong way across a day boundary; timestamps win.
	older := testhelpers.Comment(1, "1", "bob", "first")
	older.CreateTime = "2025/3/9 23:00:00"
	newer := testhelpers.Comment(2, "1", "bob", "second")
	newer.CreateTime = "2025/3/10 01:00:00"

	got := catalog.CommentsFor([]models.Comment{older, newer}, "1")
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Content)
}

func TestCommentsForMixedRowsIgnoresInputOrder(t *testing.T) {
	at := func(h int) types.FlexTime {
		return types.NewFlexTime(time.Date(2025, 1, 1, h, 0, 0, 0, time.UTC))
	}
	a := models.Comment{ID: "A", AlgorithmID: "1", CreateTime: "2025/1/1", CreatedAt: at(1)}
	b := models.Comment{ID: "B", AlgorithmID: "1", CreateTime: "2025/1/5"}
	c := models.Comment{ID: "C", AlgorithmID: "1", CreateTime: "2025/1/9", CreatedAt: at(0)}

	ids := func(in []models.Comment) string {
		var out string
		for _, x := range in {
			out += x.ID
		}
		return out
	}

	// One legacy row switches the whole set to display strings.
	assert.Equal(t, "CBA", ids(catalog.CommentsFor([]models.Comment{a, b, c}, "1")))
	assert.Equal(t, "CBA", ids(catalog.CommentsFor([]models.Comment{c, b, a}, "1")))
	assert.Equal(t, "CBA", ids(catalog.CommentsFor([]models.Comment{b, a, c}, "1")))

	// Without it the timestamps decide.
	assert.Equal(t, "AC", ids(catalog.CommentsFor([]models.Comment{c, a}, "1")))

	// Equal keys are ordered by id.
	d := models.Comment{ID: "D", AlgorithmID: "1", CreateTime: "2025/1/5"}
	assert.Equal(t, "CBDA", ids(catalog.CommentsFor([]models.Comment{d, a, b, c}, "1")))
}

func TestToggleCollectTwiceIsIdentity(t *testing.T) {
	u := &models.User{ID: "u1", Username: "alice", Collections: []string{"7", "9"}}

	once, err := catalog.ToggleCollect(u, "42")
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "9", "42"}, once.Collections)
	assert.Equal(t, []string{"7", "9"}, u.Collections, "input must not change")

	twice, err := catalog.ToggleCollect(&once, "42")
	require.NoError(t, err)
	assert.Equal(t, u.Collections, twice.Collections)
}

func TestToggleFollow(t *testing.T) {
	u := &models.User{ID: "u1", Username: "alice", Following: []string{"bob"}}

	got, err := catalog.ToggleFollow(u, "alice")
	assert.ErrorIs(t, err, catalog.ErrSelfFollow)
	assert.Equal(t, []string{"bob"}, got.Following)
	assert.Equal(t, []string{"bob"}, u.Following)

	got, err = catalog.ToggleFollow(u, "bob")
	require.NoError(t, err)
	assert.Empty(t, got.Following)

	got, err = catalog.ToggleFollow(&got, "carol")
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, got.Following)
}

func TestTogglesRequireUser(t *testing.T) {
	_, err := catalog.ToggleCollect(nil, "1")
	assert.ErrorIs(t, err, catalog.ErrUnauthenticated)
	_, err = catalog.ToggleFollow(nil, "bob")
	assert.ErrorIs(t, err, catalog.ErrUnauthenticated)
}

func TestRelationshipJoins(t *testing.T) {
	algs := testhelpers.Catalog()
	assert.Len(t, catalog.AlgorithmsBy(algs, "alice"), 2)

	in := catalog.AlgorithmsIn(algs, []string{"alg-04", "missing", "alg-02"})
	require.Len(t, in, 2)
	assert.Equal(t, "alg-02", in[0].ID)
	assert.Equal(t, "alg-04", in[1].ID)

	comments := []models.Comment{
		testhelpers.Comment(1, "alg-01", "bob", "x"),
		testhelpers.Comment(2, "alg-02", "carol", "y"),
		testhelpers.Comment(3, "alg-03", "bob", "z"),
	}
	by := catalog.CommentsBy(comments, "bob")
	require.Len(t, by, 2)
	assert.Equal(t, "z", by[0].Content)

	a, ok := catalog.FindAlgorithm(algs, "alg-03")
	assert.True(t, ok)
	assert.Equal(t, "Sune for 2x2", a.Title)
	_, ok = catalog.FindAlgorithm(algs, "nope")
	assert.False(t, ok)
}
