// data_delete.go
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
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/localnerve/cubehub/internal/cache"
)

// PurgeOptions selects what PurgeLocalData keeps.
type PurgeOptions struct {
	KeepUsers    bool
	KeepSettings bool
}

// PurgeLocalData removes the local copies of the catalog, and optionally users,
// session and language. Remote records are never touched. Every key is
// attempted; the failures are returned together.
func PurgeLocalData(ctx context.Context, kv cache.Store, opts PurgeOptions) (int, error) {
	keys := []string{cache.KeyAlgorithms, cache.KeyComments}
	if !opts.KeepUsers {
		keys = append(keys, cache.KeyUsers, cache.KeyCurrentUser)
	}
	if !opts.KeepSettings {
		keys = append(keys, cache.KeyLanguage)
	}

	var result *multierror.Error
	removed := 0
	for _, key := range keys {
		if err := kv.Remove(ctx, key); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		removed++
	}

	slog.Info("Local data purged", "keys", removed, "failed", len(keys)-removed)
	return removed, result.ErrorOrNil()
}
