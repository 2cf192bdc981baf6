package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/halwyn/wowlog-parser/internal/logging"
)

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(logging.New(io.Discard, slog.LevelError), 100)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func postBatch(t *testing.T, url, token string, req PublishBatchRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("X-WowLog-Token", token)
	}
	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPostEvents(t *testing.T) {
	_, ts := testServer(t)
	url := ts.URL + "/v1/rooms/raid/events"

	batch := PublishBatchRequest{
		PublisherID:  "pub-1",
		SentAtUnixMs: time.Now().UnixMilli(),
		Events:       []StatEvent{statEv(10_000, "damage", "Arcanista", 100)},
	}

	if resp := postBatch(t, url, "", batch); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	resp := postBatch(t, url, "secret", batch)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	var ok OkResponse
	if err := json.NewDecoder(resp.Body).Decode(&ok); err != nil || !ok.Ok {
		t.Fatalf("ok=%+v err=%v", ok, err)
	}

	// The first publisher's token claimed the room.
	if resp := postBatch(t, url, "other", batch); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d", resp.StatusCode)
	}
}

func TestPostEvents_BadJSON(t *testing.T) {
	_, ts := testServer(t)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/v1/rooms/raid/events", strings.NewReader(`{"unknownField": 1}`))
	req.Header.Set("X-WowLog-Token", "secret")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d", resp.StatusCode)
	}
}

func TestListRooms(t *testing.T) {
	_, ts := testServer(t)

	postBatch(t, ts.URL+"/v1/rooms/raid/events", "secret", PublishBatchRequest{
		PublisherID: "pub-1",
		Events:      []StatEvent{statEv(10_000, "damage", "Arcanista", 100)},
	})

	resp, err := http.Get(ts.URL + "/v1/rooms")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var list RoomsListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Rooms) != 1 || list.Rooms[0].RoomID != "raid" || list.Rooms[0].PublisherCount != 1 {
		t.Fatalf("rooms=%+v", list.Rooms)
	}
}

func TestWebSocketSnapshot(t *testing.T) {
	_, ts := testServer(t)

	postBatch(t, ts.URL+"/v1/rooms/raid/events", "secret", PublishBatchRequest{
		PublisherID: "pub-1",
		Events:      []StatEvent{statEv(10_000, "damage", "Arcanista", 100)},
	})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/rooms/raid/ws?token=secret"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Periodic bucket flushes may interleave; wait for the snapshot.
	var snap SnapshotMessage
	for i := 0; i < 5; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if err := json.Unmarshal(msg, &snap); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if snap.Type == "snapshot" {
			break
		}
	}
	if snap.Type != "snapshot" || len(snap.Buckets) != 1 || snap.Buckets[0].TotalDamage != 100 {
		t.Fatalf("snap=%+v", snap)
	}

	// Wrong token on an existing room is rejected before the upgrade.
	badURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/rooms/raid/ws?token=wrong"
	if _, _, err := websocket.DefaultDialer.Dial(badURL, nil); err == nil {
		t.Fatalf("expected dial failure")
	}
}
