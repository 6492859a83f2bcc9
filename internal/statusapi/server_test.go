package statusapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"butler-bot/internal/console"
)

// serve answers bridge requests with canned views until stop is closed.
func serve(t *testing.T, bridge *console.Bridge, stop chan struct{}) {
	t.Helper()
	go func() {
		for {
			select {
			case <-stop:
				return
			case req := <-bridge.Requests():
				switch req.Verb {
				case console.VerbStatus:
					req.Resolve(console.StatusView{
						Online:  true,
						Latency: 42 * time.Millisecond,
						Guilds:  2,
						Users:   150,
						Uptime:  90 * time.Second,
					}, nil)
				case console.VerbGuilds:
					req.Resolve([]console.GuildView{
						{ID: "1", Name: "Alpha", Owner: "10", Members: 100},
						{ID: "2", Name: "Beta", Owner: "20", Members: 50},
					}, nil)
				default:
					req.Resolve(nil, nil)
				}
			}
		}
	}()
}

func TestStatusEndpoint(t *testing.T) {
	bridge := console.NewBridge(time.Second)
	stop := make(chan struct{})
	defer close(stop)
	serve(t, bridge, stop)

	srv := New(bridge, zerolog.Nop())
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var body struct {
		Online    bool  `json:"online"`
		LatencyMS int64 `json:"latency_ms"`
		Guilds    int   `json:"guilds"`
		Users     int   `json:"users"`
		UptimeSec int   `json:"uptime_sec"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Online || body.Guilds != 2 || body.Users != 150 || body.LatencyMS != 42 || body.UptimeSec != 90 {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestGuildsEndpoint(t *testing.T) {
	bridge := console.NewBridge(time.Second)
	stop := make(chan struct{})
	defer close(stop)
	serve(t, bridge, stop)

	srv := New(bridge, zerolog.Nop())
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guilds", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var body struct {
		Count  int `json:"count"`
		Guilds []struct {
			Name    string `json:"name"`
			Members int    `json:"members"`
		} `json:"guilds"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 2 || len(body.Guilds) != 2 || body.Guilds[0].Name != "Alpha" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestStatusEndpointBridgeTimeout(t *testing.T) {
	bridge := console.NewBridge(20 * time.Millisecond) // nobody draining

	srv := New(bridge, zerolog.Nop())
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("got status %d, want 503", rec.Code)
	}
}
