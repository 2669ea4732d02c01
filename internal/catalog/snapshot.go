// snapshot.go
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

package catalog

import (
	"slices"
	"sync"
	"time"

	"github.com/localnerve/cubehub/internal/models"
)

// Snapshot is the in-memory view every query reads from. It is replaced by a
// full load and then patched by local mutations, so it can lag behind what
// other users have written remotely until the next load.
type Snapshot struct {
	mu         sync.RWMutex
	algorithms []models.Algorithm
	comments   []models.Comment
	loadedAt   time.Time
}

// Replace swaps in freshly fetched collections.
func (s *Snapshot) Replace(algs []models.Algorithm, comments []models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.algorithms = slices.Clone(algs)
	s.comments = slices.Clone(comments)
	s.loadedAt = time.Now()
}

func (s *Snapshot) AddAlgorithm(a models.Algorithm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.algorithms = append(s.algorithms, a)
}

func (s *Snapshot) AddComment(c models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, c)
}

// HideComment drops a comment from the view. Persisted copies are untouched,
// so it comes back on the next load.
func (s *Snapshot) HideComment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.comments)
	s.comments = slices.DeleteFunc(s.comments, func(c models.Comment) bool { return c.ID == id })
	return len(s.comments) != n
}

// Algorithms returns a copy of the current algorithms.
func (s *Snapshot) Algorithms() []models.Algorithm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.algorithms == nil {
		return []models.Algorithm{}
	}
	return slices.Clone(s.algorithms)
}

// Comments returns a copy of the current comments.
func (s *Snapshot) Comments() []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.comments == nil {
		return []models.Comment{}
	}
	return slices.Clone(s.comments)
}

// LoadedAt is the time of the last Replace, zero before the first load.
func (s *Snapshot) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
