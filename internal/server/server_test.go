package server

import (
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"faultmap/internal/config"
	"faultmap/pkg/heightmap/export"
	"faultmap/pkg/heightmap/faultfractal"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestServer(t *testing.T) (*httptest.Server, *config.Config) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Size = 16
	cfg.Iterations = 8
	cfg.MinDelta = 0
	cfg.MaxDelta = 10
	cfg.Filter = 0.3
	cfg.Seed = 1
	cfg.MaxSize = 64
	cfg.MaxIterations = 100
	ts := httptest.NewServer(New(cfg, quiet).Handler())
	t.Cleanup(ts.Close)
	return ts, cfg
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return res, body
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	res, body := get(t, ts.URL+"/healthz")
	if res.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("healthz = %d %q", res.StatusCode, body)
	}
}

func TestHeightMapJSONMatchesGenerator(t *testing.T) {
	ts, _ := newTestServer(t)
	res, body := get(t, ts.URL+"/heightmap/8/42.json?iterations=5&min=1&max=9&filter=0.2")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", res.StatusCode, body)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}

	var doc export.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatal(err)
	}

	want, err := faultfractal.NewWithLogger(faultfractal.Config{Size: 8, Iterations: 5, MinDelta: 1, MaxDelta: 9, Filter: 0.2, Seed: 42}, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Size != 8 || doc.Seed != 42 || !slices.Equal(doc.Heights, want.Heights().Cells()) {
		t.Fatalf("served grid differs from a fresh generator: %+v", doc)
	}
}

func TestHeightMapPNG(t *testing.T) {
	ts, _ := newTestServer(t)
	res, body := get(t, ts.URL+"/heightmap/12/-3.png?palette=gray")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", res.StatusCode, body)
	}
	img, err := png.Decode(strings.NewReader(string(body)))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 12 {
		t.Fatalf("image bounds = %v", b)
	}
}

func TestHeightMapRaw(t *testing.T) {
	ts, _ := newTestServer(t)
	res, body := get(t, ts.URL+"/heightmap/10/7.raw")
	if res.StatusCode != http.StatusOK || len(body) != 100 {
		t.Fatalf("raw = %d with %d bytes", res.StatusCode, len(body))
	}
}

func TestHeightMapRejectsBadParameters(t *testing.T) {
	ts, _ := newTestServer(t)
	for _, path := range []string{
		"/heightmap/0/1.json",
		"/heightmap/8/1.json?filter=1",
		"/heightmap/8/1.json?min=20&max=10",
		"/heightmap/8/1.json?iterations=0",
		"/heightmap/8/1.json?iterations=abc",
		"/heightmap/65/1.json",
		"/heightmap/8/1.json?iterations=101",
		"/heightmap/8/1.png?palette=sepia",
	} {
		res, body := get(t, ts.URL+path)
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status = %d: %s", path, res.StatusCode, body)
		}
	}

	res, _ := get(t, ts.URL+"/heightmap/8/1.tiff")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown format status = %d", res.StatusCode)
	}
}

func TestHeightMapUnknownAlgorithm(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Algorithm = "midpoint"
	ts := httptest.NewServer(New(cfg, quiet).Handler())
	defer ts.Close()
	res, body := get(t, ts.URL+"/heightmap/8/1.json")
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d: %s", res.StatusCode, body)
	}
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req Request) Response {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}
	return read(t, conn)
}

func read(t *testing.T, conn *websocket.Conn) Response {
	t.Helper()
	var res Response
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatal(err)
	}
	return res
}

func TestSessionLoadAdvances(t *testing.T) {
	ts, cfg := newTestServer(t)
	conn := dial(t, ts)

	first := read(t, conn)
	if first.Type != "grid" || first.Loads != 1 || first.Grid == nil {
		t.Fatalf("initial message = %+v", first)
	}
	fresh, err := faultfractal.NewWithLogger(cfg.Generation(), quiet)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(first.Grid.Heights, fresh.Heights().Cells()) {
		t.Fatal("initial session grid must match a fresh generator")
	}

	second := roundTrip(t, conn, Request{Op: OpLoad})
	if second.Type != "grid" || second.Loads != 2 {
		t.Fatalf("load reply = %+v", second)
	}
	if slices.Equal(first.Grid.Heights, second.Grid.Heights) {
		t.Fatal("second load should continue the random sequence")
	}
}

func TestSessionSet(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts)
	read(t, conn)

	bad := 4
	res := roundTrip(t, conn, Request{Op: OpSet, MinDelta: &bad, MaxDelta: new(int)})
	if res.Type != "error" || res.Config.MaxDelta != 10 || res.Config.MinDelta != 0 {
		t.Fatalf("invalid set reply = %+v", res)
	}

	iterations, lo, hi := 20, 30, 40
	res = roundTrip(t, conn, Request{Op: OpSet, Iterations: &iterations, MinDelta: &lo, MaxDelta: &hi})
	if res.Type != "config" {
		t.Fatalf("set reply = %+v", res)
	}
	if res.Config.Iterations != 20 || res.Config.MinDelta != 30 || res.Config.MaxDelta != 40 {
		t.Fatalf("config after set = %+v", res.Config)
	}

	res = roundTrip(t, conn, Request{Op: OpLoad})
	if res.Type != "grid" || res.Config.Iterations != 20 {
		t.Fatalf("load after set = %+v", res)
	}
}

func TestSessionNew(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts)
	read(t, conn)

	cfg := faultfractal.Config{Size: 6, Iterations: 3, MinDelta: 0, MaxDelta: 5, Filter: 0, Seed: 9}
	res := roundTrip(t, conn, Request{Op: OpNew, Config: &cfg})
	if res.Type != "grid" || res.Loads != 1 || res.Grid.Size != 6 {
		t.Fatalf("new reply = %+v", res)
	}

	cfg.Size = 1000
	res = roundTrip(t, conn, Request{Op: OpNew, Config: &cfg})
	if res.Type != "error" {
		t.Fatalf("oversized new reply = %+v", res)
	}

	res = roundTrip(t, conn, Request{Op: "explode"})
	if res.Type != "error" {
		t.Fatalf("unknown op reply = %+v", res)
	}
}
