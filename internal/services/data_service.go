// data_service.go
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

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/cubehub/internal/models"
	"github.com/localnerve/cubehub/internal/seed"
	"github.com/localnerve/cubehub/internal/store"
	"github.com/localnerve/cubehub/internal/types"
)

// ImportResult counts what ImportCatalog wrote.
type ImportResult struct {
	Users      int `json:"users"`
	Algorithms int `json:"algorithms"`
	// Synced is how many algorithms the remote store accepted.
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
}

// ImportCatalog writes users and algorithms from a catalog file through the
// store. Entries matching an existing username, email, id or
// (title, cube type, contributor) are skipped, so importing twice is harmless.
func ImportCatalog(ctx context.Context, st store.Store, cat seed.Catalog) (ImportResult, error) {
	var result ImportResult
	if err := cat.Validate(); err != nil {
		return result, err
	}

	users, err := st.Users(ctx)
	if err != nil {
		return result, err
	}
	added := 0
	for _, u := range cat.Users {
		if userExists(users, u.Username, u.Email) {
			result.Skipped++
			continue
		}
		users = append(users, models.User{
			ID:          uuid.NewString(),
			Username:    strings.TrimSpace(u.Username),
			Email:       strings.TrimSpace(u.Email),
			Avatar:      u.Avatar,
			Following:   []string{},
			Collections: []string{},
		})
		added++
	}
	if added > 0 {
		if err := st.SetUsers(ctx, users); err != nil {
			return result, err
		}
	}
	result.Users = added

	existing, err := st.FetchAlgorithms(ctx)
	if err != nil {
		return result, err
	}
	for _, entry := range cat.Algorithms {
		if algorithmExists(existing, entry) {
			result.Skipped++
			continue
		}
		a, err := newAlgorithm(entry)
		if err != nil {
			return result, err
		}
		ok, err := st.SaveAlgorithm(ctx, a)
		if err != nil {
			return result, err
		}
		existing = append(existing, a)
		result.Algorithms++
		if ok {
			result.Synced++
		}
	}

	slog.Info("Catalog imported", "users", result.Users, "algorithms", result.Algorithms, "synced", result.Synced, "skipped", result.Skipped)
	return result, nil
}

// ExportCatalog returns every user and algorithm the store can see.
func ExportCatalog(ctx context.Context, st store.Store) (seed.Catalog, error) {
	users, err := st.Users(ctx)
	if err != nil {
		return seed.Catalog{}, err
	}
	algs, err := st.FetchAlgorithms(ctx)
	if err != nil {
		return seed.Catalog{}, err
	}
	return seed.FromModels(users, algs), nil
}

// userExists and algorithmExists compare trimmed values, the way they are stored.
func userExists(users []models.User, username, email string) bool {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	for _, u := range users {
		if u.Username == username || u.Email == email {
			return true
		}
	}
	return false
}

func algorithmExists(algs []models.Algorithm, entry seed.Algorithm) bool {
	for _, a := range algs {
		if entry.ID != "" && a.ID == entry.ID {
			return true
		}
		if a.Title == strings.TrimSpace(entry.Title) && a.CubeType == entry.CubeType &&
			a.Contributor == strings.TrimSpace(entry.Contributor) {
			return true
		}
	}
	return false
}

func newAlgorithm(entry seed.Algorithm) (models.Algorithm, error) {
	id := entry.ID
	if id == "" {
		v7, err := uuid.NewV7()
		if err != nil {
			return models.Algorithm{}, fmt.Errorf("generate algorithm id: %w", err)
		}
		id = v7.String()
	}
	images := entry.Images
	if images == nil {
		images = []string{}
	}
	return models.Algorithm{
		ID:          id,
		CubeType:    entry.CubeType,
		Title:       strings.TrimSpace(entry.Title),
		Category:    entry.Category,
		Algorithm:   strings.TrimSpace(entry.Algorithm),
		Contributor: strings.TrimSpace(entry.Contributor),
		Images:      images,
		CreatedAt:   types.NewFlexTime(time.Now().UTC()),
	}, nil
}
