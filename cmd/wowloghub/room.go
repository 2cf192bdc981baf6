package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var errUnauthorized = errors.New("unauthorized")

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{conn: conn, send: make(chan []byte, 64), done: make(chan struct{})}
}

func (c *wsClient) close() {
	c.once.Do(func() {
		close(c.done)
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

func (c *wsClient) enqueueBytes(b []byte) bool {
	select {
	case <-c.done:
		return false
	case c.send <- b:
		return true
	default:
		return false
	}
}

func (c *wsClient) enqueueJSON(v any) bool {
	b, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return c.enqueueBytes(b)
}

type bucketAgg struct {
	startUnixMs    int64
	damageByActor  map[string]int64
	healingByActor map[string]int64
	totalDamage    int64
	totalHealing   int64
}

func (a *bucketAgg) entry() BucketEntry {
	dmg := make(map[string]int64, len(a.damageByActor))
	for n, v := range a.damageByActor {
		dmg[n] = v
	}
	heal := make(map[string]int64, len(a.healingByActor))
	for n, v := range a.healingByActor {
		heal[n] = v
	}
	return BucketEntry{
		BucketStartUnixMs: a.startUnixMs,
		DamageByActor:     dmg,
		HealingByActor:    heal,
		TotalDamage:       a.totalDamage,
		TotalHealing:      a.totalHealing,
	}
}

// Room aggregates published stat events into rolling time buckets and fans
// them out to websocket subscribers. The first publisher's token becomes
// the room token; everyone after must present the same one.
type Room struct {
	id    string
	token string

	mu   sync.Mutex
	subs map[*wsClient]struct{}

	lastSeenUnixMs         int64
	lastFlushedBucketStart int64

	// PublisherID -> last seen server time (unix ms). TTL-based.
	publishers map[string]int64

	// Dedupe key -> last seen server time (unix ms). TTL-based.
	dedupeLastSeen map[string]int64

	bucketSec  int64
	maxBuckets int
	buckets    map[int64]*bucketAgg
	order      []int64
}

func newRoom(id string, token string) *Room {
	return &Room{
		id:                     id,
		token:                  token,
		subs:                   make(map[*wsClient]struct{}),
		lastFlushedBucketStart: -1,
		publishers:             make(map[string]int64),
		dedupeLastSeen:         make(map[string]int64),
		bucketSec:              5,
		maxBuckets:             120,
		buckets:                make(map[int64]*bucketAgg),
	}
}

func (r *Room) authorize(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.token == "" {
		r.token = token
		return nil
	}
	if r.token != token {
		return errUnauthorized
	}
	return nil
}

func (r *Room) addSub(c *wsClient) {
	r.mu.Lock()
	r.subs[c] = struct{}{}
	r.lastSeenUnixMs = time.Now().UnixMilli()
	r.mu.Unlock()
}

func (r *Room) removeSub(c *wsClient) {
	r.mu.Lock()
	delete(r.subs, c)
	r.lastSeenUnixMs = time.Now().UnixMilli()
	r.mu.Unlock()
}

func (r *Room) broadcastJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	r.mu.Lock()
	for c := range r.subs {
		if ok := c.enqueueBytes(b); !ok {
			c.close()
			delete(r.subs, c)
		}
	}
	r.mu.Unlock()
}

// IngestBatch folds a publish batch into the rolling buckets and returns
// one update message per touched bucket, oldest first.
func (r *Room) IngestBatch(serverRecvUnixMs int64, req PublishBatchRequest) []*BucketUpdateMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastSeenUnixMs = serverRecvUnixMs
	if req.PublisherID != "" {
		r.publishers[req.PublisherID] = serverRecvUnixMs
	}

	bucketMs := r.bucketSec * 1000
	updatesByBucket := make(map[int64]*BucketUpdateMessage)
	for _, ev := range req.Events {
		key := dedupeKey(ev)
		if last, ok := r.dedupeLastSeen[key]; ok && serverRecvUnixMs-last <= 30_000 {
			continue
		}
		r.dedupeLastSeen[key] = serverRecvUnixMs

		start := ev.TsUnixMs - (ev.TsUnixMs % bucketMs)
		agg := r.buckets[start]
		if agg == nil {
			agg = &bucketAgg{
				startUnixMs:    start,
				damageByActor:  make(map[string]int64),
				healingByActor: make(map[string]int64),
			}
			r.buckets[start] = agg
			r.order = append(r.order, start)
			sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
		}

		switch ev.Kind {
		case "heal":
			agg.healingByActor[ev.Actor] += ev.Amount
			agg.totalHealing += ev.Amount
		default:
			agg.damageByActor[ev.Actor] += ev.Amount
			agg.totalDamage += ev.Amount
		}

		msg := updatesByBucket[start]
		if msg == nil {
			msg = &BucketUpdateMessage{Type: "bucket_update", BucketSec: r.bucketSec}
			updatesByBucket[start] = msg
		}
		msg.BucketEntry = agg.entry()
	}

	r.pruneLocked(serverRecvUnixMs)

	if len(updatesByBucket) == 0 {
		return nil
	}
	// Oldest->newest so subscriber state converges deterministically.
	out := make([]*BucketUpdateMessage, 0, len(updatesByBucket))
	for _, bs := range r.order {
		if m := updatesByBucket[bs]; m != nil {
			out = append(out, m)
		}
	}
	return out
}

// FlushCompletedBucket publishes the most recently completed bucket once
// per tick so idle subscribers still see time advance.
func (r *Room) FlushCompletedBucket(nowUnixMs int64) *BucketUpdateMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.subs) == 0 {
		return nil
	}
	bucketMs := r.bucketSec * 1000
	curStart := nowUnixMs - (nowUnixMs % bucketMs)
	if curStart == r.lastFlushedBucketStart {
		return nil
	}
	r.lastFlushedBucketStart = curStart

	publishStart := curStart - bucketMs
	if publishStart < 0 {
		publishStart = 0
	}

	msg := &BucketUpdateMessage{Type: "bucket_update", BucketSec: r.bucketSec}
	if agg := r.buckets[publishStart]; agg != nil {
		msg.BucketEntry = agg.entry()
	} else {
		msg.BucketEntry = BucketEntry{
			BucketStartUnixMs: publishStart,
			DamageByActor:     map[string]int64{},
			HealingByActor:    map[string]int64{},
		}
	}
	return msg
}

// Snapshot renders the full rolling window, newest bucket first, plus the
// actor roster sorted by combined output.
func (r *Room) Snapshot() SnapshotMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	totals := make(map[string]int64)
	buckets := make([]BucketEntry, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		agg := r.buckets[r.order[i]]
		if agg == nil {
			continue
		}
		for n, v := range agg.damageByActor {
			totals[n] += v
		}
		for n, v := range agg.healingByActor {
			totals[n] += v
		}
		buckets = append(buckets, agg.entry())
	}

	actors := make([]string, 0, len(totals))
	for n := range totals {
		actors = append(actors, n)
	}
	sort.Slice(actors, func(i, j int) bool {
		if totals[actors[i]] == totals[actors[j]] {
			return actors[i] < actors[j]
		}
		return totals[actors[i]] > totals[actors[j]]
	})

	return SnapshotMessage{
		Type:      "snapshot",
		BucketSec: r.bucketSec,
		Buckets:   buckets,
		Actors:    actors,
	}
}

func (r *Room) pruneLocked(nowUnixMs int64) {
	// Dedupe TTL (30s).
	for k, last := range r.dedupeLastSeen {
		if nowUnixMs-last > 30_000 {
			delete(r.dedupeLastSeen, k)
		}
	}

	// Rolling window by count.
	if r.maxBuckets > 0 && len(r.order) > r.maxBuckets {
		excess := len(r.order) - r.maxBuckets
		for i := 0; i < excess; i++ {
			delete(r.buckets, r.order[i])
		}
		r.order = append([]int64(nil), r.order[excess:]...)
	}

	// Publisher TTL (60s).
	for pid, last := range r.publishers {
		if nowUnixMs-last > 60_000 {
			delete(r.publishers, pid)
		}
	}
}

func (r *Room) summary(nowUnixMs int64, publisherTTL time.Duration) RoomSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	if publisherTTL <= 0 {
		publisherTTL = 60 * time.Second
	}
	cutoff := nowUnixMs - publisherTTL.Milliseconds()
	pubCount := 0
	for _, last := range r.publishers {
		if last >= cutoff {
			pubCount++
		}
	}

	return RoomSummary{
		RoomID:          r.id,
		LastSeenUnixMs:  r.lastSeenUnixMs,
		PublisherCount:  pubCount,
		SubscriberCount: len(r.subs),
		BucketSec:       int(r.bucketSec),
	}
}

func dedupeKey(ev StatEvent) string {
	h := sha256.New()
	_, _ = h.Write([]byte(ev.Actor))
	_, _ = h.Write([]byte("|"))
	_, _ = h.Write([]byte(ev.Target))
	_, _ = h.Write([]byte("|"))
	_, _ = h.Write([]byte(ev.Kind))
	_, _ = h.Write([]byte("|"))
	_, _ = h.Write([]byte(ev.Spell))
	_, _ = h.Write([]byte("|"))
	_, _ = h.Write([]byte(strconv.FormatInt(ev.Amount, 10)))
	_, _ = h.Write([]byte("|"))
	_, _ = h.Write([]byte(strconv.FormatInt(ev.TsUnixMs/1000, 10)))
	return hex.EncodeToString(h.Sum(nil))
}

type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[string]*Room)}
}

func (rr *RoomRegistry) GetOrCreate(roomID string, token string) (*Room, error) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	r, ok := rr.rooms[roomID]
	if !ok {
		r = newRoom(roomID, token)
		rr.rooms[roomID] = r
		return r, nil
	}
	if err := r.authorize(token); err != nil {
		return nil, err
	}
	return r, nil
}

func (rr *RoomRegistry) Rooms() []*Room {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	out := make([]*Room, 0, len(rr.rooms))
	for _, r := range rr.rooms {
		out = append(out, r)
	}
	return out
}

func (rr *RoomRegistry) ListRooms(nowUnixMs int64, activeOnly bool) []RoomSummary {
	rooms := rr.Rooms()

	activeCutoff := nowUnixMs - (30 * time.Minute).Milliseconds()
	out := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		s := r.summary(nowUnixMs, 60*time.Second)
		if activeOnly {
			if s.LastSeenUnixMs <= 0 || s.LastSeenUnixMs < activeCutoff {
				continue
			}
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastSeenUnixMs == out[j].LastSeenUnixMs {
			return out[i].RoomID < out[j].RoomID
		}
		return out[i].LastSeenUnixMs > out[j].LastSeenUnixMs
	})
	return out
}
