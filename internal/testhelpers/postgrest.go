// postgrest.go
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

package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// RecordedRequest is one request received by FakePostgREST.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// FakePostgREST serves /rest/v1/{table} from memory. Inserted rows are listed
// first, which matches order=created_at.desc for rows inserted in time order.
type FakePostgREST struct {
	Server *httptest.Server

	mu       sync.Mutex
	rows     map[string][]json.RawMessage
	requests []RecordedRequest
	failWith int
}

// NewFakePostgREST starts the fake and stops it when t ends.
func NewFakePostgREST(t *testing.T) *FakePostgREST {
	t.Helper()
	f := &FakePostgREST{rows: map[string][]json.RawMessage{}}

	app := fiber.New(fiber.Config{DisableStartupMessage: true, Immutable: true})
	app.Use(func(c *fiber.Ctx) error {
		f.record(c)
		f.mu.Lock()
		status := f.failWith
		f.mu.Unlock()
		if status != 0 {
			return c.Status(status).JSON(fiber.Map{"message": "injected failure"})
		}
		return c.Next()
	})
	app.Get("/rest/v1/:table", f.list)
	app.Post("/rest/v1/:table", f.insert)

	f.Server = httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base project URL.
func (f *FakePostgREST) URL() string { return f.Server.URL }

// Fail makes every following request answer with status. Zero restores service.
func (f *FakePostgREST) Fail(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = status
}

// Put replaces the rows of table. Rows are served in the given order.
func (f *FakePostgREST) Put(t *testing.T, table string, rows ...any) {
	t.Helper()
	encoded := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		raw, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("encode %s row: %v", table, err)
		}
		encoded = append(encoded, raw)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[table] = encoded
}

// PutRaw replaces the rows of table with a raw JSON array.
func (f *FakePostgREST) PutRaw(t *testing.T, table, array string) {
	t.Helper()
	var rows []json.RawMessage
	if err := json.Unmarshal([]byte(array), &rows); err != nil {
		t.Fatalf("decode %s rows: %v", table, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[table] = rows
}

// Rows returns the raw rows of table.
func (f *FakePostgREST) Rows(table string) []json.RawMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.rows[table])
}

// Requests returns every request seen so far.
func (f *FakePostgREST) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.requests)
}

// LastRequest returns the most recent request, or the zero value.
func (f *FakePostgREST) LastRequest() RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return RecordedRequest{}
	}
	return f.requests[len(f.requests)-1]
}

func (f *FakePostgREST) record(c *fiber.Ctx) {
	header := http.Header{}
	c.Request().Header.VisitAll(func(k, v []byte) {
		header.Add(string(k), string(v))
	})
	query, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	req := RecordedRequest{
		Method: c.Method(),
		Path:   c.Path(),
		Query:  query,
		Header: header,
		Body:   slices.Clone(c.Body()),
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
}

func (f *FakePostgREST) list(c *fiber.Ctx) error {
	f.mu.Lock()
	rows := slices.Clone(f.rows[c.Params("table")])
	f.mu.Unlock()
	if rows == nil {
		rows = []json.RawMessage{}
	}
	return c.JSON(rows)
}

func (f *FakePostgREST) insert(c *fiber.Ctx) error {
	var row map[string]any
	if err := json.Unmarshal(c.Body(), &row); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	f.mu.Lock()
	table := c.Params("table")
	f.rows[table] = append([]json.RawMessage{slices.Clone(c.Body())}, f.rows[table]...)
	f.mu.Unlock()
	if c.Get("Prefer") == "return=minimal" {
		return c.SendStatus(fiber.StatusCreated)
	}
	return c.Status(fiber.StatusCreated).JSON([]map[string]any{row})
}
