package main

// StatEvent is one compact damage or healing fact published to a room.
type StatEvent struct {
	TsUnixMs int64  `json:"tsUnixMs"`
	Kind     string `json:"kind"` // "damage" | "heal"
	Actor    string `json:"actor"`
	Target   string `json:"target"`
	Spell    string `json:"spell"`
	Amount   int64  `json:"amount"`
	Crit     bool   `json:"crit"`
}

type PublishBatchRequest struct {
	PublisherID  string      `json:"publisherId"`
	SentAtUnixMs int64       `json:"sentAtUnixMs"`
	Events       []StatEvent `json:"events"`
}

type OkResponse struct {
	Ok bool `json:"ok"`
}

type BucketEntry struct {
	BucketStartUnixMs int64            `json:"bucketStartUnixMs"`
	DamageByActor     map[string]int64 `json:"damageByActor"`
	HealingByActor    map[string]int64 `json:"healingByActor"`
	TotalDamage       int64            `json:"totalDamage"`
	TotalHealing      int64            `json:"totalHealing"`
}

type BucketUpdateMessage struct {
	Type      string `json:"type"`
	BucketSec int64  `json:"bucketSec"`
	BucketEntry
}

type SnapshotMessage struct {
	Type      string        `json:"type"`
	BucketSec int64         `json:"bucketSec"`
	Buckets   []BucketEntry `json:"buckets"`
	Actors    []string      `json:"actors"`
}

type RoomSummary struct {
	RoomID          string `json:"roomId"`
	LastSeenUnixMs  int64  `json:"lastSeenUnixMs"`
	PublisherCount  int    `json:"publisherCount"`
	SubscriberCount int    `json:"subscriberCount"`
	BucketSec       int    `json:"bucketSec"`
}

type RoomsListResponse struct {
	Rooms []RoomSummary `json:"rooms"`
}
