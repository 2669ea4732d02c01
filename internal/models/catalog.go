// catalog.go
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

package models

import (
	"slices"

	"github.com/localnerve/cubehub/internal/types"
)

// CubeTypes lists the puzzles an algorithm can target, in display order.
var CubeTypes = []string{"2x2", "3x3", "4x4", "Pyraminx", "Megaminx", "Skewb", "Square-1"}

// Categories lists the algorithm sets, in display order.
var Categories = []string{"OLL", "PLL", "F2L", "CMLL", "CLL", "ELL", "Custom"}

// MaxImages caps the step images embedded in one algorithm.
const MaxImages = 6

// IsCubeType reports whether s is one of CubeTypes.
func IsCubeType(s string) bool { return slices.Contains(CubeTypes, s) }

// IsCategory reports whether s is one of Categories.
func IsCategory(s string) bool { return slices.Contains(Categories, s) }

// User is a locally registered identity. Users are never sent to the remote store.
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Avatar      string   `json:"avatar,omitempty"`
	Following   []string `json:"following"`
	Collections []string `json:"collections"`
}

// Clone returns a deep copy so toggles never alias the caller's slices.
func (u User) Clone() User {
	u.Following = slices.Clone(u.Following)
	u.Collections = slices.Clone(u.Collections)
	if u.Following == nil {
		u.Following = []string{}
	}
	if u.Collections == nil {
		u.Collections = []string{}
	}
	return u
}

// Follows reports whether u follows username.
func (u User) Follows(username string) bool { return slices.Contains(u.Following, username) }

// HasCollected reports whether algorithmID is in u's collections.
func (u User) HasCollected(algorithmID string) bool {
	return slices.Contains(u.Collections, algorithmID)
}

// Algorithm is a shared formula record. Comments reference it by ID; it keeps
// no list of its comments.
type Algorithm struct {
	ID          string                 `json:"id"`
	CubeType    string                 `json:"cube_type"`
	Title       string                 `json:"title"`
	Category    string                 `json:"category"`
	Algorithm   string                 `json:"algorithm"`
	Contributor string                 `json:"contributor"`
	Stars       types.FlexCount        `json:"stars"`
	Images      types.FlexList[string] `json:"images"`
	CreatedAt   types.FlexTime         `json:"created_at,omitzero"`
}

// Comment belongs to an algorithm through AlgorithmID.
// CreateTime is the display string; CreatedAt is the orderable timestamp.
type Comment struct {
	ID          string          `json:"id"`
	AlgorithmID string          `json:"algorithm_id"`
	Content     string          `json:"content"`
	Author      string          `json:"author"`
	CreateTime  string          `json:"create_time"`
	CreatedAt   types.FlexTime  `json:"created_at,omitzero"`
	LikeCount   types.FlexCount `json:"like_count"`
}
