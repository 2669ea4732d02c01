// client_test.go
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

package remote_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/localnerve/cubehub/internal/config"
	"github.com/localnerve/cubehub/internal/models"
	"github.com/localnerve/cubehub/internal/remote"
	"github.com/localnerve/cubehub/internal/testhelpers"
	"github.com/localnerve/cubehub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSendsContract(t *testing.T) {
	fake := testhelpers.NewFakePostgREST(t)
	fake.Put(t, "algorithms", testhelpers.Algorithm(2, "3x3", "OLL", "Sune", "bob"), testhelpers.Algorithm(1, "3x3", "PLL", "T Perm", "alice"))
	client := testhelpers.NewRemote(fake)

	var got []models.Algorithm
	require.NoError(t, client.List(context.Background(), remote.Algorithms, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Sune", got[0].Title)

	req := fake.LastRequest()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/rest/v1/algorithms", req.Path)
	assert.Equal(t, "*", req.Query.Get("select"))
	assert.Equal(t, "created_at.desc", req.Query.Get("order"))
	assert.Equal(t, "test-publishable-key", req.Header.Get("apikey"))
	assert.Equal(t, "Bearer test-publishable-key", req.Header.Get("Authorization"))
}

func TestListDecodesLegacyRows(t *testing.T) {
	fake := testhelpers.NewFakePostgREST(t)
	fake.PutRaw(t, "algorithms", `[
		{"id":"a1","cube_type":"3x3","title":"Old","category":"PLL","algorithm":"R U","contributor":"x","stars":"4","images":"data:image/png;base64,AA"},
		{"id":"a2","cube_type":"3x3","title":"Older","category":"PLL","algorithm":"R U","contributor":"x","stars":null,"images":null}
	]`)
	client := testhelpers.NewRemote(fake)

	var got []models.Algorithm
	require.NoError(t, client.List(context.Background(), remote.Algorithms, &got))
	require.Len(t, got, 2)
	assert.Equal(t, uint64(4), got[0].Stars.Uint64())
	assert.Equal(t, []string{"data:image/png;base64,AA"}, got[0].Images.Slice())
	assert.Empty(t, got[1].Images)
}

func TestListDecodesTimestampsWithoutOffset(t *testing.T) {
	fake := testhelpers.NewFakePostgREST(t)
	fake.PutRaw(t, "algorithms", `[
		{"id":"a1","cube_type":"3x3","title":"Plain","category":"PLL","algorithm":"R U","contributor":"x","created_at":"2024-01-02T03:04:05.123"},
		{"id":"a2","cube_type":"3x3","title":"Zoned","category":"PLL","algorithm":"R U","contributor":"x","created_at":"2024-01-02T03:04:05.123+00:00"},
		{"id":"a3","cube_type":"3x3","title":"Unset","category":"PLL","algorithm":"R U","contributor":"x","created_at":null}
	]`)
	fake.PutRaw(t, "comments", `[
		{"id":"c1","algorithm_id":"a1","content":"nice","author":"x","create_time":"2024/1/2 03:04:05","created_at":"2024-01-02 03:04:05"}
	]`)
	client := testhelpers.NewRemote(fake)

	var algs []models.Algorithm
	require.NoError(t, client.List(context.Background(), remote.Algorithms, &algs))
	require.Len(t, algs, 3)
	want := time.Date(2024, 1, 2, 3, 4, 5, 123000000, time.UTC)
	assert.True(t, want.Equal(algs[0].CreatedAt.Time))
	assert.True(t, want.Equal(algs[1].CreatedAt.Time))
	assert.True(t, algs[2].CreatedAt.IsZero())

	var comments []models.Comment
	require.NoError(t, client.List(context.Background(), remote.Comments, &comments))
	require.Len(t, comments, 1)
	assert.True(t, want.Truncate(time.Second).Equal(comments[0].CreatedAt.Time))
}

func TestInsertAddsCreatedAt(t *testing.T) {
	fake := testhelpers.NewFakePostgREST(t)
	client := testhelpers.NewRemote(fake)
	at := time.Date(2025, 4, 2, 8, 30, 0, 0, time.UTC)

	alg := testhelpers.Algorithm(1, "3x3", "PLL", "T Perm", "alice")
	alg.CreatedAt = types.FlexTime{}
	require.NoError(t, client.Insert(context.Background(), remote.Algorithms, alg, at))

	req := fake.LastRequest()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/rest/v1/algorithms", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "return=minimal", req.Header.Get("Prefer"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "2025-04-02T08:30:00Z", body["created_at"])
	assert.Equal(t, "T Perm", body["title"])
	assert.Equal(t, "3x3", body["cube_type"])
	assert.Len(t, fake.Rows("algorithms"), 1)
}

func TestInsertCommentHasNoPreferHeader(t *testing.T) {
	fake := testhelpers.NewFakePostgREST(t)
	client := testhelpers.NewRemote(fake)

	c := testhelpers.Comment(1, "alg-01", "bob", "nice")
	require.NoError(t, client.Insert(context.Background(), remote.Comments, c, c.CreatedAt.Time))

	req := fake.LastRequest()
	assert.Equal(t, "/rest/v1/comments", req.Path)
	assert.Empty(t, req.Header.Get("Prefer"))
}

func TestNon2xxIsStatusError(t *testing.T) {
	fake := testhelpers.NewFakePostgREST(t)
	fake.Fail(http.StatusUnauthorized)
	client := testhelpers.NewRemote(fake)

	var got []models.Comment
	err := client.List(context.Background(), remote.Comments, &got)
	var se *remote.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Code)
	assert.Equal(t, remote.Comments, se.Collection)

	err = client.Insert(context.Background(), remote.Comments, testhelpers.Comment(1, "a", "b", "c"), time.Now())
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.MethodPost, se.Method)
}

func TestInsertRejectsNonObject(t *testing.T) {
	fake := testhelpers.NewFakePostgREST(t)
	client := testhelpers.NewRemote(fake)

	err := client.Insert(context.Background(), remote.Comments, []string{"x"}, time.Now())
	assert.ErrorContains(t, err, "not an object")
	assert.Empty(t, fake.Requests())
}

func TestNewForConfigDisabled(t *testing.T) {
	assert.Nil(t, remote.NewForConfig(&config.Config{RemoteURL: "https://p.supabase.co", RemoteToken: " "}))
	assert.NotNil(t, remote.NewForConfig(&config.Config{RemoteURL: "https://p.supabase.co", RemoteToken: "k", RemoteTimeout: time.Second}))
}

func TestPingReachesFake(t *testing.T) {
	fake := testhelpers.NewFakePostgREST(t)
	assert.NoError(t, testhelpers.NewRemote(fake).Ping(context.Background()))
}

func TestPingRejectsUnusableURLs(t *testing.T) {
	for _, base := range []string{"ftp://files.example.com", "https://", "::not a url"} {
		client := remote.New(remote.Options{BaseURL: base, Token: "k", Timeout: time.Second})
		assert.Error(t, client.Ping(context.Background()), base)
	}
}

func TestPingReportsClosedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client := remote.New(remote.Options{BaseURL: "http://" + addr, Token: "k", Timeout: time.Second})
	err = client.Ping(context.Background())
	assert.ErrorContains(t, err, addr)
}
