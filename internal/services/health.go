// health.go
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

	"github.com/localnerve/cubehub/internal/cache"
	"github.com/localnerve/cubehub/internal/remote"
)

// Health states. Degraded means the service answers from local data only.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Cache        string            `json:"cache"`
	Remote       string            `json:"remote"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck checks the local cache and, when configured, the remote store.
// A nil client reports the remote as disabled, which is healthy.
func HealthCheck(ctx context.Context, kv cache.Store, rc *remote.Client) HealthCheckResult {
	result := HealthCheckResult{
		Status:  StatusHealthy,
		Details: make(map[string]string),
	}

	// Check cache connectivity
	if err := kv.Ping(ctx); err != nil {
		result.Status = StatusUnhealthy
		result.Cache = "unreachable"
		result.Details["cache_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Cache ping failed: %v", err)
		slog.Error("Health check failed - cache ping", "error", err)
	} else {
		result.Cache = "ok"
		result.Details["cache_driver"] = kv.Driver()
	}

	// Check remote connectivity
	switch {
	case rc == nil:
		result.Remote = "disabled"
	default:
		if err := rc.Ping(ctx); err != nil {
			if result.Status == StatusHealthy {
				result.Status = StatusDegraded
			}
			result.Remote = "unreachable"
			result.Details["remote_error"] = err.Error()
			if result.ErrorMessage == "" {
				result.ErrorMessage = fmt.Sprintf("Remote ping failed: %v", err)
			} else {
				result.ErrorMessage += fmt.Sprintf("; Remote ping failed: %v", err)
			}
			slog.Warn("Health check - remote ping failed", "error", err)
		} else {
			result.Remote = "ok"
			result.Details["remote_url"] = rc.BaseURL()
		}
	}

	if result.Status == StatusHealthy {
		slog.Debug("Health check passed - all systems operational")
	}

	return result
}
