package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/halwyn/wowlog-parser/internal/metrics"
)

type Server struct {
	rooms    *RoomRegistry
	upgrader websocket.Upgrader
	log      *slog.Logger

	// Per-publisher token buckets; publish bursts beyond the limit get
	// 429 instead of flooding the rooms.
	limitMu   sync.Mutex
	limiters  map[string]*rate.Limiter
	rateLimit rate.Limit
}

func NewServer(log *slog.Logger, publishPerSec int) *Server {
	if publishPerSec <= 0 {
		publishPerSec = 20
	}
	s := &Server{
		rooms: NewRoomRegistry(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:       log,
		limiters:  make(map[string]*rate.Limiter),
		rateLimit: rate.Limit(publishPerSec),
	}
	go s.flushLoop()
	return s
}

func (s *Server) flushLoop() {
	t := time.NewTicker(1 * time.Second)
	defer t.Stop()
	for range t.C {
		now := time.Now().UnixMilli()
		for _, r := range s.rooms.Rooms() {
			if msg := r.FlushCompletedBucket(now); msg != nil {
				r.broadcastJSON(msg)
			}
		}
	}
}

func (s *Server) limiter(publisherID string) *rate.Limiter {
	s.limitMu.Lock()
	defer s.limitMu.Unlock()
	l, ok := s.limiters[publisherID]
	if !ok {
		l = rate.NewLimiter(s.rateLimit, int(s.rateLimit)*2)
		s.limiters[publisherID] = l
	}
	return l
}

func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/rooms", s.listRooms).Methods(http.MethodGet)
	r.HandleFunc("/v1/rooms/{room}/events", s.postEvents).Methods(http.MethodPost)
	r.HandleFunc("/v1/rooms/{room}/ws", s.getWS).Methods(http.MethodGet)
	return r
}

func (s *Server) listRooms(w http.ResponseWriter, r *http.Request) {
	activeOnly := true
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("activeOnly"))) {
	case "false", "0":
		activeOnly = false
	}

	rooms := s.rooms.ListRooms(time.Now().UnixMilli(), activeOnly)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(RoomsListResponse{Rooms: rooms})
}

func (s *Server) postEvents(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["room"]
	token := strings.TrimSpace(r.Header.Get("X-WowLog-Token"))
	if token == "" {
		metrics.HubRejectedTotal.WithLabelValues("missing_token").Inc()
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	serverRecvUnixMs := time.Now().UnixMilli()

	var req PublishBatchRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		metrics.HubRejectedTotal.WithLabelValues("bad_json").Inc()
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if !s.limiter(req.PublisherID).Allow() {
		metrics.HubRejectedTotal.WithLabelValues("rate_limited").Inc()
		http.Error(w, "slow down", http.StatusTooManyRequests)
		return
	}

	room, err := s.rooms.GetOrCreate(roomID, token)
	if err != nil {
		metrics.HubRejectedTotal.WithLabelValues("unauthorized").Inc()
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	s.log.Info("publish", "room", roomID, "publisher", req.PublisherID, "events", len(req.Events))
	metrics.HubBatchesTotal.WithLabelValues(roomID).Inc()
	metrics.HubEventsTotal.WithLabelValues(roomID).Add(float64(len(req.Events)))

	for _, u := range room.IngestBatch(serverRecvUnixMs, req) {
		room.broadcastJSON(u)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(OkResponse{Ok: true})
}

func (s *Server) getWS(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["room"]
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		s.log.Warn("ws unauthorized", "room", roomID, "reason", "missing token")
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	room, err := s.rooms.GetOrCreate(roomID, token)
	if err != nil {
		s.log.Warn("ws unauthorized", "room", roomID, "err", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade failed", "room", roomID, "err", err)
		return
	}

	remote := r.RemoteAddr
	s.log.Info("ws connect", "room", roomID, "remote", remote)
	metrics.HubSubscribers.Inc()
	defer metrics.HubSubscribers.Dec()

	client := newWSClient(c)
	room.addSub(client)

	// Keepalive + close detection: read loop.
	_ = c.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.SetPongHandler(func(string) error {
		_ = c.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go s.writePump(roomID, room, client)

	// Always enqueue the initial snapshot immediately.
	_ = client.enqueueJSON(room.Snapshot())

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	room.removeSub(client)
	client.close()
	s.log.Info("ws disconnect", "room", roomID, "remote", remote)
}

func (s *Server) writePump(roomID string, room *Room, c *wsClient) {
	ticker := time.NewTicker(20 * time.Second)
	defer ticker.Stop()
	defer func() {
		room.removeSub(c)
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.log.Warn("ws write failed", "room", roomID, "err", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
