// query.go
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
	"strings"

	"github.com/localnerve/cubehub/internal/models"
)

// Filter narrows Search. Empty or "all" Category and CubeType match everything.
type Filter struct {
	Term     string
	Category string
	CubeType string
}

// Search keeps the algorithms whose title, notation or contributor contain Term,
// ignoring case, and that pass the categorical filters. Input order is kept.
func Search(algs []models.Algorithm, f Filter) []models.Algorithm {
	term := strings.ToLower(f.Term)
	out := []models.Algorithm{}
	for _, a := range algs {
		if !matchesTerm(a, term) {
			continue
		}
		if !matchesFacet(a.Category, f.Category) || !matchesFacet(a.CubeType, f.CubeType) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesTerm(a models.Algorithm, term string) bool {
	return strings.Contains(strings.ToLower(a.Title), term) ||
		strings.Contains(strings.ToLower(a.Algorithm), term) ||
		strings.Contains(strings.ToLower(a.Contributor), term)
}

func matchesFacet(value, want string) bool {
	return want == "" || strings.EqualFold(want, "all") || value == want
}

// CommentsFor returns the comments of one algorithm, newest first.
func CommentsFor(comments []models.Comment, algorithmID string) []models.Comment {
	out := []models.Comment{}
	for _, c := range comments {
		if c.AlgorithmID == algorithmID {
			out = append(out, c)
		}
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders comments newest first with one rule for the whole
// slice: CreatedAt when every comment carries one, otherwise the display
// strings, which is how older data was sorted. Ties fall back to the id.
func SortNewestFirst(comments []models.Comment) {
	byTimestamp := !slices.ContainsFunc(comments, func(c models.Comment) bool {
		return c.CreatedAt.IsZero()
	})
	slices.SortFunc(comments, func(a, b models.Comment) int {
		var n int
		if byTimestamp {
			n = b.CreatedAt.Compare(a.CreatedAt.Time)
		} else {
			n = strings.Compare(b.CreateTime, a.CreateTime)
		}
		if n != 0 {
			return n
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// AlgorithmsBy returns the uploads of contributor.
func AlgorithmsBy(algs []models.Algorithm, contributor string) []models.Algorithm {
	out := []models.Algorithm{}
	for _, a := range algs {
		if a.Contributor == contributor {
			out = append(out, a)
		}
	}
	return out
}

// AlgorithmsIn returns the algorithms whose id is in ids, in catalog order.
// Ids with no matching algorithm are skipped.
func AlgorithmsIn(algs []models.Algorithm, ids []string) []models.Algorithm {
	out := []models.Algorithm{}
	for _, a := range algs {
		if slices.Contains(ids, a.ID) {
			out = append(out, a)
		}
	}
	return out
}

// CommentsBy returns the comments written by author, newest first.
func CommentsBy(comments []models.Comment, author string) []models.Comment {
	out := []models.Comment{}
	for _, c := range comments {
		if c.Author == author {
			out = append(out, c)
		}
	}
	SortNewestFirst(out)
	return out
}

// FindAlgorithm looks an algorithm up by id.
func FindAlgorithm(algs []models.Algorithm, id string) (models.Algorithm, bool) {
	i := slices.IndexFunc(algs, func(a models.Algorithm) bool { return a.ID == id })
	if i < 0 {
		return models.Algorithm{}, false
	}
	return algs[i], true
}

// ToggleCollect adds algorithmID to the user's collections, or removes it when
// present. The input is not modified.
func ToggleCollect(user *models.User, algorithmID string) (models.User, error) {
	if user == nil {
		return models.User{}, ErrUnauthenticated.WithMessage("Please login to save algorithms")
	}
	u := user.Clone()
	u.Collections = toggle(u.Collections, algorithmID)
	return u, nil
}

// ToggleFollow adds username to the user's follow list, or removes it when
// present. Following yourself is rejected and changes nothing.
func ToggleFollow(user *models.User, username string) (models.User, error) {
	if user == nil {
		return models.User{}, ErrUnauthenticated.WithMessage("Please login to follow contributors")
	}
	u := user.Clone()
	if u.Username == username {
		return u, ErrSelfFollow
	}
	u.Following = toggle(u.Following, username)
	return u, nil
}

func toggle(set []string, v string) []string {
	if slices.Contains(set, v) {
		return slices.DeleteFunc(set, func(x string) bool { return x == v })
	}
	return append(set, v)
}
