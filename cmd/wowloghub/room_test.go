package main

import (
	"testing"
)

func statEv(ts int64, kind, actor string, amount int64) StatEvent {
	return StatEvent{TsUnixMs: ts, Kind: kind, Actor: actor, Target: "Gurgthock", Spell: "Fireball", Amount: amount}
}

func TestRoom_IngestBatch(t *testing.T) {
	r := newRoom("raid", "secret")

	now := int64(1_000_000)
	updates := r.IngestBatch(now, PublishBatchRequest{
		PublisherID: "pub-1",
		Events: []StatEvent{
			statEv(10_000, "damage", "Arcanista", 100),
			statEv(11_000, "damage", "Arcanista", 50),
			statEv(12_000, "heal", "Loriel", 400),
			statEv(17_000, "damage", "Arcanista", 25),
		},
	})

	// 5s buckets: ts 10-12s land in bucket 10000, ts 17s in bucket 15000,
	// oldest first.
	if len(updates) != 2 {
		t.Fatalf("len=%d", len(updates))
	}
	first := updates[0]
	if first.BucketStartUnixMs != 10_000 || first.TotalDamage != 150 || first.TotalHealing != 400 {
		t.Fatalf("first=%+v", first)
	}
	if first.DamageByActor["Arcanista"] != 150 || first.HealingByActor["Loriel"] != 400 {
		t.Fatalf("first=%+v", first)
	}
	if updates[1].BucketStartUnixMs != 15_000 || updates[1].TotalDamage != 25 {
		t.Fatalf("second=%+v", updates[1])
	}
}

func TestRoom_IngestBatchDedupe(t *testing.T) {
	r := newRoom("raid", "secret")

	ev := statEv(10_000, "damage", "Arcanista", 100)
	now := int64(1_000_000)
	r.IngestBatch(now, PublishBatchRequest{PublisherID: "pub-1", Events: []StatEvent{ev}})

	// The same fact from a second publisher within the TTL is dropped.
	updates := r.IngestBatch(now+5_000, PublishBatchRequest{PublisherID: "pub-2", Events: []StatEvent{ev}})
	if len(updates) != 0 {
		t.Fatalf("duplicate produced updates: %+v", updates)
	}

	// Past the 30s TTL it counts again.
	updates = r.IngestBatch(now+40_000, PublishBatchRequest{PublisherID: "pub-2", Events: []StatEvent{ev}})
	if len(updates) != 1 || updates[0].TotalDamage != 200 {
		t.Fatalf("updates=%+v", updates)
	}
}

func TestRoom_Snapshot(t *testing.T) {
	r := newRoom("raid", "secret")

	now := int64(1_000_000)
	r.IngestBatch(now, PublishBatchRequest{
		PublisherID: "pub-1",
		Events: []StatEvent{
			statEv(10_000, "damage", "Arcanista", 100),
			statEv(17_000, "heal", "Loriel", 400),
		},
	})

	snap := r.Snapshot()
	if snap.Type != "snapshot" || snap.BucketSec != 5 {
		t.Fatalf("snap=%+v", snap)
	}
	// Newest bucket first.
	if len(snap.Buckets) != 2 || snap.Buckets[0].BucketStartUnixMs != 15_000 {
		t.Fatalf("buckets=%+v", snap.Buckets)
	}
	// Roster by combined output descending.
	if len(snap.Actors) != 2 || snap.Actors[0] != "Loriel" || snap.Actors[1] != "Arcanista" {
		t.Fatalf("actors=%v", snap.Actors)
	}
}

func TestRoom_Authorize(t *testing.T) {
	rr := NewRoomRegistry()

	a, err := rr.GetOrCreate("raid", "secret")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	b, err := rr.GetOrCreate("raid", "secret")
	if err != nil || a != b {
		t.Fatalf("same token must return the same room: %v", err)
	}
	if _, err := rr.GetOrCreate("raid", "wrong"); err == nil {
		t.Fatalf("expected unauthorized")
	}

	// An empty token room adopts the first token presented.
	if _, err := rr.GetOrCreate("open", ""); err != nil {
		t.Fatalf("err=%v", err)
	}
	if _, err := rr.GetOrCreate("open", "claimed"); err != nil {
		t.Fatalf("first token must claim the room: %v", err)
	}
	if _, err := rr.GetOrCreate("open", "other"); err == nil {
		t.Fatalf("expected unauthorized after claim")
	}
}

func TestRoom_BucketWindowPrunes(t *testing.T) {
	r := newRoom("raid", "secret")
	r.maxBuckets = 3

	now := int64(1_000_000)
	for i := int64(0); i < 6; i++ {
		r.IngestBatch(now, PublishBatchRequest{
			PublisherID: "pub-1",
			Events:      []StatEvent{statEv(i*5_000, "damage", "Arcanista", 10)},
		})
	}
	snap := r.Snapshot()
	if len(snap.Buckets) != 3 {
		t.Fatalf("len=%d", len(snap.Buckets))
	}
	if snap.Buckets[0].BucketStartUnixMs != 25_000 {
		t.Fatalf("buckets=%+v", snap.Buckets)
	}
}

func TestRoom_FlushCompletedBucket(t *testing.T) {
	r := newRoom("raid", "secret")
	c := newWSClient(nil)
	r.addSub(c)

	r.IngestBatch(1_000_000, PublishBatchRequest{
		PublisherID: "pub-1",
		Events:      []StatEvent{statEv(10_000, "damage", "Arcanista", 100)},
	})

	// now=17s: the completed bucket is 10000.
	msg := r.FlushCompletedBucket(17_000)
	if msg == nil || msg.BucketStartUnixMs != 10_000 || msg.TotalDamage != 100 {
		t.Fatalf("msg=%+v", msg)
	}

	// Same tick window flushes once.
	if msg := r.FlushCompletedBucket(18_000); msg != nil {
		t.Fatalf("unexpected second flush: %+v", msg)
	}

	// A later window with no data still emits an empty bucket.
	msg = r.FlushCompletedBucket(22_000)
	if msg == nil || msg.BucketStartUnixMs != 15_000 || msg.TotalDamage != 0 {
		t.Fatalf("msg=%+v", msg)
	}
}
