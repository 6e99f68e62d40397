// Package stats accumulates per player hit counters for each of the known gangs.
package stats

import (
	"errors"
	"fmt"
	"sync"

	"github.com/leighmacdonald/capwatch/internal/gang"
	"github.com/leighmacdonald/capwatch/pkg/logparse"
)

var ErrUnknownGang = errors.New("unknown gang")

// HitCounters holds the cumulative totals for a single player.
type HitCounters struct {
	Hits      int64 `json:"hits"`
	Headshots int64 `json:"headshots"`
	Damage    int64 `json:"damage"`
}

// HeadshotPercent returns the share of hits that were headshots, 0 when no hits are recorded.
func (c HitCounters) HeadshotPercent() float64 {
	if c.Hits == 0 {
		return 0
	}

	return float64(c.Headshots) / float64(c.Hits) * 100
}

func (c HitCounters) add(evt logparse.HitRecordedEvt) HitCounters {
	c.Hits += evt.Hits
	c.Headshots += evt.Headshots
	c.Damage += evt.Damage

	return c
}

// Snapshot is a point in time copy of every gang's player counters.
type Snapshot map[gang.Gang]map[string]HitCounters

// Store is the process wide stats table. Gang buckets are fixed at creation, only player
// entries are ever added.
type Store struct {
	mu      sync.RWMutex
	players map[gang.Gang]map[string]HitCounters
}

func NewStore() *Store {
	players := make(map[gang.Gang]map[string]HitCounters)
	for _, g := range gang.Known() {
		players[g] = map[string]HitCounters{}
	}

	return &Store{players: players}
}

// ApplyHit adds the event totals to the players existing counters. Events for gangs outside of the
// known set are rejected and leave the store untouched.
func (s *Store) ApplyHit(evt logparse.HitRecordedEvt) (HitCounters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, found := s.players[evt.Gang]
	if !found {
		return HitCounters{}, fmt.Errorf("%w: %s", ErrUnknownGang, evt.Gang)
	}

	updated := bucket[evt.Nick].add(evt)
	bucket[evt.Nick] = updated

	return updated, nil
}

// Player returns the current counters for a single player.
func (s *Store) Player(g gang.Gang, nick string) (HitCounters, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counters, found := s.players[g][nick]

	return counters, found
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(Snapshot, len(s.players))
	for g, bucket := range s.players {
		players := make(map[string]HitCounters, len(bucket))
		for nick, counters := range bucket {
			players[nick] = counters
		}

		snapshot[g] = players
	}

	return snapshot
}
