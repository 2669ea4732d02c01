// cloud.go
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

package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/localnerve/cubehub/internal/models"
	"github.com/localnerve/cubehub/internal/remote"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var remoteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "cubehub",
	Name:      "remote_requests_total",
	Help:      "Remote collection store requests by collection, operation and outcome.",
}, []string{"collection", "op", "outcome"})

var tracer = otel.Tracer("github.com/localnerve/cubehub/internal/store")

// cloudStore adds the remote collection store on top of the local mirror.
// Users, session and language stay local.
type cloudStore struct {
	*localStore
	remote *remote.Client
}

func (s *cloudStore) Enabled() bool { return true }

// FetchAlgorithms serves the local mirror, possibly stale, when the remote fails.
func (s *cloudStore) FetchAlgorithms(ctx context.Context) ([]models.Algorithm, error) {
	ctx, span := startSpan(ctx, "store.FetchAlgorithms", remote.Algorithms)
	defer span.End()

	var algs []models.Algorithm
	err := s.remote.List(ctx, remote.Algorithms, &algs)
	observe(span, remote.Algorithms, "list", err)
	if err == nil {
		if algs == nil {
			algs = []models.Algorithm{}
		}
		return algs, nil
	}
	slog.Warn("Remote algorithm fetch failed, serving local mirror", "error", err)
	return s.localStore.FetchAlgorithms(ctx)
}

// SaveAlgorithm always lands in the local mirror before the remote is tried.
func (s *cloudStore) SaveAlgorithm(ctx context.Context, a models.Algorithm) (bool, error) {
	ctx, span := startSpan(ctx, "store.SaveAlgorithm", remote.Algorithms)
	defer span.End()

	if err := s.appendAlgorithm(ctx, a); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	err := s.remote.Insert(ctx, remote.Algorithms, a, createdAt(a.CreatedAt.Time))
	observe(span, remote.Algorithms, "insert", err)
	if err != nil {
		slog.Warn("Remote algorithm save failed, kept locally", "id", a.ID, "error", err)
		return false, nil
	}
	return true, nil
}

// FetchComments yields an empty list, not the mirror, when the remote fails.
func (s *cloudStore) FetchComments(ctx context.Context) ([]models.Comment, error) {
	ctx, span := startSpan(ctx, "store.FetchComments", remote.Comments)
	defer span.End()

	var comments []models.Comment
	err := s.remote.List(ctx, remote.Comments, &comments)
	observe(span, remote.Comments, "list", err)
	if err != nil {
		slog.Warn("Remote comment fetch failed", "error", err)
		return []models.Comment{}, nil
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

func (s *cloudStore) SaveComment(ctx context.Context, c models.Comment) (bool, error) {
	ctx, span := startSpan(ctx, "store.SaveComment", remote.Comments)
	defer span.End()

	if err := s.appendComment(ctx, c); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	err := s.remote.Insert(ctx, remote.Comments, c, createdAt(c.CreatedAt.Time))
	observe(span, remote.Comments, "insert", err)
	if err != nil {
		slog.Warn("Remote comment save failed, kept locally", "id", c.ID, "error", err)
		return false, nil
	}
	return true, nil
}

func createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func startSpan(ctx context.Context, name string, coll remote.Collection) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("cubehub.collection", string(coll))))
}

func observe(span trace.Span, coll remote.Collection, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	remoteRequests.WithLabelValues(string(coll), op, outcome).Inc()
}
