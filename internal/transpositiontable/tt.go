// Package transpositiontable implements the bounded zobrist-key -> score
// cache described in §4.E: at most one entry per key, insertion-order
// eviction, and LRU freshening on query. Built as a hash map plus a
// doubly-linked list of queue nodes (§9's design note), using the standard
// library's container/list for the queue.
//
// TtTable is safe for concurrent use: search workers query and insert from
// multiple goroutines (§5), so every operation is guarded by a single
// reader-writer lock, the simplest of the disciplines §5 allows.
package transpositiontable

import (
	"container/list"
	"sync"

	"github.com/op/go-logging"

	"github.com/corvidchess/corvid/internal/logging"
	"github.com/corvidchess/corvid/internal/position"
	. "github.com/corvidchess/corvid/internal/types"
)

// entryBytes is the approximate per-entry footprint used to translate a
// megabyte budget (the UCI Hash option) into an entry-count capacity.
const entryBytes = 16

// Stats tracks cache usage for UCI "info string" diagnostics.
type Stats struct {
	Puts, Hits, Misses, Evictions uint64
}

type cacheValue struct {
	score Value
	elem  *list.Element // this key's node in the eviction queue
}

// TtTable is the bounded transposition cache.
type TtTable struct {
	log *logging.Logger

	mu       sync.RWMutex
	capacity int
	queue    *list.List // front = oldest/least-recently-used
	entries  map[position.Key]*cacheValue
	Stats    Stats
}

// New creates a TtTable sized to hold roughly sizeInMb megabytes worth of
// entries (UCI Hash option, §4.G).
func New(sizeInMb int) *TtTable {
	tt := &TtTable{
		log:     logging.Get("tt"),
		queue:   list.New(),
		entries: make(map[position.Key]*cacheValue),
	}
	tt.Resize(sizeInMb)
	return tt
}

// Resize changes the capacity and clears all entries, matching the
// teacher's TtTable.Resize semantics. It takes the table's lock like every
// other operation; entries inserted before the call are lost.
func (tt *TtTable) Resize(sizeInMb int) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	if sizeInMb < 1 {
		sizeInMb = 1
	}
	tt.capacity = (sizeInMb * 1024 * 1024) / entryBytes
	tt.queue.Init()
	tt.entries = make(map[position.Key]*cacheValue)
	tt.log.Infof("transposition table resized to %d MB, capacity %d entries", sizeInMb, tt.capacity)
}

// Insert records score for key (§4.E insert). If the cache is at capacity,
// the oldest-inserted key is evicted first. Re-inserting an existing key
// updates its score and moves it to the back of the queue, same as Query.
func (tt *TtTable) Insert(key position.Key, score Value) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if existing, ok := tt.entries[key]; ok {
		existing.score = score
		tt.queue.MoveToBack(existing.elem)
		return
	}

	if len(tt.entries) >= tt.capacity && tt.capacity > 0 {
		tt.evictOldestLocked()
	}

	elem := tt.queue.PushBack(key)
	tt.entries[key] = &cacheValue{score: score, elem: elem}
	tt.Stats.Puts++
}

// Query looks up key. On a hit, the key is moved to the back of the
// eviction queue (LRU freshening) before the score is returned (§4.E).
func (tt *TtTable) Query(key position.Key) (Value, bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	v, ok := tt.entries[key]
	if !ok {
		tt.Stats.Misses++
		return 0, false
	}
	tt.queue.MoveToBack(v.elem)
	tt.Stats.Hits++
	return v.score, true
}

// Remove drops key from the cache if present (§4.E).
func (tt *TtTable) Remove(key position.Key) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	v, ok := tt.entries[key]
	if !ok {
		return
	}
	tt.queue.Remove(v.elem)
	delete(tt.entries, key)
}

// Clear empties the cache without changing capacity (used by NewGame,
// §9's open-question resolution: NewGame clears the cache).
func (tt *TtTable) Clear() {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.queue.Init()
	tt.entries = make(map[position.Key]*cacheValue)
}

// Len returns the current number of entries.
func (tt *TtTable) Len() int {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return len(tt.entries)
}

// Hashfull reports per-mille fullness, the UCI "info hashfull" field.
func (tt *TtTable) Hashfull() int {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	if tt.capacity == 0 {
		return 0
	}
	return (len(tt.entries) * 1000) / tt.capacity
}

// evictOldestLocked removes the front (oldest-inserted, or least-recently
// queried) entry. Caller must hold tt.mu.
func (tt *TtTable) evictOldestLocked() {
	front := tt.queue.Front()
	if front == nil {
		return
	}
	key := front.Value.(position.Key)
	tt.queue.Remove(front)
	delete(tt.entries, key)
	tt.Stats.Evictions++
}
