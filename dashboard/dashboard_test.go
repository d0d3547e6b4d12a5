// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/js-arias/phymig/dashboard"
	"github.com/js-arias/phymig/geoloc"
	"github.com/js-arias/phymig/migmap"
	"github.com/js-arias/phymig/migration"
)

func newServer(t testing.TB) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tab := geoloc.New()
	tab.Add("France", 2.2137, 46.2276)
	tab.Add("Spain", -3.7492, 40.4637)
	tab.Add("Italy", 12.5674, 41.8719)

	e := migration.NewEvents(
		migration.Event{Time: 2017.9, Origin: migration.Unknown, Destination: "France"},
		migration.Event{Time: 2018.4, Origin: "France", Destination: "Spain"},
		migration.Event{Time: 2019.1, Origin: "France", Destination: "Italy"},
		migration.Event{Time: 2020.7, Origin: "Spain", Destination: "Italy"},
	)

	s := dashboard.New(tab, e, migmap.Options{Curvature: 0.2})
	return s.Handler()
}

func get(t testing.TB, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestIndex(t *testing.T) {
	h := newServer(t)

	w := get(t, h, "/?origin=France")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	for _, s := range []string{
		"Outbreak Introduction FROM France TO All",
		`<option value="France" selected>`,
		`<option value="Spain">`,
		"2 migrations",
		"/map.svg?origin=France",
	} {
		if !strings.Contains(body, s) {
			t.Errorf("index: %q not found in page", s)
		}
	}
	if strings.Contains(body, migration.Unknown) {
		t.Errorf("index: unknown states should not be listed")
	}
}

func TestIndexNotFound(t *testing.T) {
	h := newServer(t)

	w := get(t, h, "/?origin=Italy")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), migmap.ErrNoEvents.Error()) {
		t.Errorf("index: expecting not found message")
	}
}

func TestMap(t *testing.T) {
	h := newServer(t)

	w := get(t, h, "/map.svg?origin=France&destination=Italy")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type: got %q, want %q", ct, "image/svg+xml")
	}
	if !strings.Contains(w.Body.String(), "<svg") {
		t.Errorf("map: output is not a SVG image")
	}

	w = get(t, h, "/map.svg?destination=Portugal")
	if w.Code != http.StatusNotFound {
		t.Errorf("empty selection: status: got %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestEvents(t *testing.T) {
	h := newServer(t)

	w := get(t, h, "/events.csv?destination=Italy")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 3 {
		t.Errorf("events: got %d lines, want 3:\n%s", len(lines), w.Body.String())
	}
}
