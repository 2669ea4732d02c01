// data.go
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

// Package testhelpers holds fixtures and fakes shared by package tests.
package testhelpers

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/localnerve/cubehub/internal/cache"
	"github.com/localnerve/cubehub/internal/config"
	"github.com/localnerve/cubehub/internal/models"
	"github.com/localnerve/cubehub/internal/remote"
	"github.com/localnerve/cubehub/internal/types"
)

// NewCache opens a sqlite backed cache in a temp dir.
func NewCache(t *testing.T) cache.Store {
	t.Helper()
	cfg := &config.Config{
		CacheDriver:       "gorm",
		DBType:            "sqlite",
		DBDatabase:        filepath.Join(t.TempDir(), "cubehub-test.db"),
		DBConnectionLimit: 1,
	}
	kv, err := cache.NewForConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open test cache: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

// NewRemote returns a client for fake with a short timeout.
func NewRemote(fake *FakePostgREST) *remote.Client {
	return remote.New(remote.Options{
		BaseURL: fake.URL(),
		Token:   "test-publishable-key",
		Timeout: 2 * time.Second,
	})
}

// Base is the reference time for fixtures.
var Base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// Algorithm builds an algorithm fixture. i orders created_at.
func Algorithm(i int, cubeType, category, title, contributor string) models.Algorithm {
	return models.Algorithm{
		ID:          fmt.Sprintf("alg-%02d", i),
		CubeType:    cubeType,
		Title:       title,
		Category:    category,
		Algorithm:   "R U R' U'",
		Contributor: contributor,
		Images:      []string{},
		CreatedAt:   types.NewFlexTime(Base.Add(time.Duration(i) * time.Minute)),
	}
}

// Comment builds a comment fixture. i orders created_at.
func Comment(i int, algorithmID, author, content string) models.Comment {
	at := Base.Add(time.Duration(i) * time.Minute)
	return models.Comment{
		ID:          fmt.Sprintf("cmt-%02d", i),
		AlgorithmID: algorithmID,
		Content:     content,
		Author:      author,
		CreateTime:  at.Format("2006/1/2 15:04:05"),
		CreatedAt:   types.NewFlexTime(at),
	}
}

// Catalog is a small mixed catalog, oldest first.
func Catalog() []models.Algorithm {
	return []models.Algorithm{
		Algorithm(1, "3x3", "PLL", "T Perm", "alice"),
		Algorithm(2, "3x3", "OLL", "Sune", "bob"),
		Algorithm(3, "2x2", "CLL", "Sune for 2x2", "alice"),
		Algorithm(4, "Pyraminx", "Custom", "Tip flip", "carol"),
	}
}
