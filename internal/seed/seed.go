// seed.go
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

// Package seed reads and writes catalog files in YAML.
package seed

import (
	"fmt"
	"strings"

	"github.com/localnerve/cubehub/internal/models"
	"gopkg.in/yaml.v3"
)

// User is a user entry of a catalog file.
type User struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Avatar   string `yaml:"avatar,omitempty"`
}

// Algorithm is an algorithm entry of a catalog file. ID is optional.
type Algorithm struct {
	ID          string   `yaml:"id,omitempty"`
	Title       string   `yaml:"title"`
	CubeType    string   `yaml:"cube_type"`
	Category    string   `yaml:"category"`
	Algorithm   string   `yaml:"algorithm"`
	Contributor string   `yaml:"contributor"`
	Images      []string `yaml:"images,omitempty"`
}

// Catalog is the whole file.
type Catalog struct {
	Users      []User      `yaml:"users,omitempty"`
	Algorithms []Algorithm `yaml:"algorithms"`
}

// Parse decodes and validates a catalog file.
func Parse(raw []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// Validate checks every entry against the catalog rules.
func (c Catalog) Validate() error {
	for i, u := range c.Users {
		if strings.TrimSpace(u.Username) == "" || strings.TrimSpace(u.Email) == "" {
			return fmt.Errorf("users[%d]: username and email are required", i)
		}
	}
	for i, a := range c.Algorithms {
		switch {
		case strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Algorithm) == "":
			return fmt.Errorf("algorithms[%d]: title and algorithm are required", i)
		case !models.IsCubeType(a.CubeType):
			return fmt.Errorf("algorithms[%d] %q: unknown cube type %q", i, a.Title, a.CubeType)
		case !models.IsCategory(a.Category):
			return fmt.Errorf("algorithms[%d] %q: unknown category %q", i, a.Title, a.Category)
		case strings.TrimSpace(a.Contributor) == "":
			return fmt.Errorf("algorithms[%d] %q: contributor is required", i, a.Title)
		case len(a.Images) > models.MaxImages:
			return fmt.Errorf("algorithms[%d] %q: at most %d images", i, a.Title, models.MaxImages)
		}
	}
	return nil
}

// Marshal encodes a catalog file.
func Marshal(c Catalog) ([]byte, error) {
	return yaml.Marshal(c)
}

// FromModels builds a catalog file from stored records.
func FromModels(users []models.User, algs []models.Algorithm) Catalog {
	c := Catalog{}
	for _, u := range users {
		c.Users = append(c.Users, User{Username: u.Username, Email: u.Email, Avatar: u.Avatar})
	}
	for _, a := range algs {
		c.Algorithms = append(c.Algorithms, Algorithm{
			ID:          a.ID,
			Title:       a.Title,
			CubeType:    a.CubeType,
			Category:    a.Category,
			Algorithm:   a.Algorithm,
			Contributor: a.Contributor,
			Images:      a.Images.Slice(),
		})
	}
	return c
}
