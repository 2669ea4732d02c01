// snapshot_test.go
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
	"sync"
	"testing"

	"github.com/localnerve/cubehub/internal/catalog"
	"github.com/localnerve/cubehub/internal/testhelpers"
	"github.com/stretchr/testify/assert"
)

func TestSnapshot(t *testing.T) {
	var s catalog.Snapshot
	assert.True(t, s.LoadedAt().IsZero())
	assert.NotNil(t, s.Algorithms())
	assert.NotNil(t, s.Comments())

	s.Replace(testhelpers.Catalog(), nil)
	assert.False(t, s.LoadedAt().IsZero())
	assert.Len(t, s.Algorithms(), 4)

	algs := s.Algorithms()
	algs[0].Title = "changed"
	assert.Equal(t, "T Perm", s.Algorithms()[0].Title, "callers get copies")

	s.AddComment(testhelpers.Comment(1, "alg-01", "bob", "x"))
	assert.True(t, s.HideComment("cmt-01"))
	assert.False(t, s.HideComment("cmt-01"))
	assert.Empty(t, s.Comments())
}

func TestSnapshotConcurrentWriters(t *testing.T) {
	var s catalog.Snapshot
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddAlgorithm(testhelpers.Algorithm(i, "3x3", "PLL", "x", "y"))
			_ = s.Algorithms()
		}()
	}
	wg.Wait()
	assert.Len(t, s.Algorithms(), 50)
}
