// types_test.go
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

package types_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/localnerve/cubehub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexListDecodesLegacyShapes(t *testing.T) {
	cases := map[string][]string{
		`["a","b"]`: {"a", "b"},
		`"a"`:       {"a"},
		`null`:      {},
		`""`:        {},
		`[]`:        {},
	}
	for in, want := range cases {
		var got struct {
			Images types.FlexList[string] `json:"images"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"images":`+in+`}`), &got), in)
		assert.Equal(t, want, got.Images.Slice(), in)
	}
}

func TestFlexListMarshalsNilAsEmptyArray(t *testing.T) {
	var f types.FlexList[string]
	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestFlexCount(t *testing.T) {
	var v struct {
		Stars types.FlexCount `json:"stars"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"stars":"12"}`), &v))
	assert.EqualValues(t, 12, v.Stars.Uint64())

	require.NoError(t, json.Unmarshal([]byte(`{"stars":7}`), &v))
	assert.EqualValues(t, 7, v.Stars)

	require.NoError(t, json.Unmarshal([]byte(`{"stars":null}`), &v))
	assert.EqualValues(t, 0, v.Stars)

	assert.Error(t, json.Unmarshal([]byte(`{"stars":"many"}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"stars":true}`), &v))
}

func TestFlexTimeDecodesRemoteShapes(t *testing.T) {
	want := time.Date(2024, 1, 2, 3, 4, 5, 123000000, time.UTC)
	cases := map[string]time.Time{
		`"2024-01-02T03:04:05.123Z"`:      want,
		`"2024-01-02T03:04:05.123+00:00"`: want,
		`"2024-01-02T05:04:05.123+02:00"`: want,
		`"2024-01-02T03:04:05.123+00"`:    want,
		`"2024-01-02T03:04:05.123"`:       want,
		`"2024-01-02 03:04:05.123"`:       want,
		`"2024-01-02T03:04:05"`:           want.Truncate(time.Second),
		`null`:                            {},
		`""`:                              {},
	}
	for in, expected := range cases {
		var f types.FlexTime
		require.NoError(t, json.Unmarshal([]byte(in), &f), in)
		assert.True(t, expected.Equal(f.Time), "%s decoded as %v", in, f.Time)
	}

	var f types.FlexTime
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &f))
	assert.Error(t, json.Unmarshal([]byte(`12`), &f))
}

func TestFlexTimeMarshal(t *testing.T) {
	out, err := json.Marshal(types.NewFlexTime(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02T03:04:05Z"`, string(out))

	out, err = json.Marshal(types.FlexTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	type row struct {
		CreatedAt types.FlexTime `json:"created_at,omitzero"`
	}
	out, err = json.Marshal(row{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}

func TestCustomErrorIs(t *testing.T) {
	sentinel := &types.CustomError{Code: 400, Message: "bad", Type: "catalog.validation.input"}
	specific := sentinel.WithMessage("title is required")

	assert.True(t, errors.Is(specific, sentinel))
	assert.True(t, errors.Is(fmt.Errorf("upload: %w", specific), sentinel))
	assert.False(t, errors.Is(specific, &types.CustomError{Type: "other"}))
	assert.Equal(t, "400: title is required [type: catalog.validation.input]", specific.Error())
}
