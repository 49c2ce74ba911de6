package memory

import (
	"context"
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/riskibarqy/match-ingest/internal/domain/club"
	"github.com/riskibarqy/match-ingest/internal/domain/event"
	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/player"
	"github.com/riskibarqy/match-ingest/internal/domain/season"
	"github.com/riskibarqy/match-ingest/internal/domain/stats"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

// state is one consistent version of every table. Slices stored in it are never mutated in
// place, so a clone only copies the maps.
type state struct {
	clubs           map[string]club.Club
	opponents       map[string]club.Opponent
	players         map[string]player.Player
	opponentPlayers map[string]player.OpponentPlayer
	matches         map[string]match.Match
	lineups         map[string][]match.LineupEntry
	goals           map[string][]match.Goal
	events          map[string][]event.MatchEvent
	matchStats      map[string][]stats.MatchStatistics
	playerStats     map[string][]stats.PlayerMatchStatistics
	clubSeasons     map[string]season.ClubSeason
	playerSeasons   map[string][]season.PlayerSeason
}

func newState() *state {
	return &state{
		clubs:           make(map[string]club.Club),
		opponents:       make(map[string]club.Opponent),
		players:         make(map[string]player.Player),
		opponentPlayers: make(map[string]player.OpponentPlayer),
		matches:         make(map[string]match.Match),
		lineups:         make(map[string][]match.LineupEntry),
		goals:           make(map[string][]match.Goal),
		events:          make(map[string][]event.MatchEvent),
		matchStats:      make(map[string][]stats.MatchStatistics),
		playerStats:     make(map[string][]stats.PlayerMatchStatistics),
		clubSeasons:     make(map[string]season.ClubSeason),
		playerSeasons:   make(map[string][]season.PlayerSeason),
	}
}

func (s *state) clone() *state {
	return &state{
		clubs:           maps.Clone(s.clubs),
		opponents:       maps.Clone(s.opponents),
		players:         maps.Clone(s.players),
		opponentPlayers: maps.Clone(s.opponentPlayers),
		matches:         maps.Clone(s.matches),
		lineups:         maps.Clone(s.lineups),
		goals:           maps.Clone(s.goals),
		events:          maps.Clone(s.events),
		matchStats:      maps.Clone(s.matchStats),
		playerStats:     maps.Clone(s.playerStats),
		clubSeasons:     maps.Clone(s.clubSeasons),
		playerSeasons:   maps.Clone(s.playerSeasons),
	}
}

// mergeInto applies to dst every row that work added, changed or removed relative to base.
func (s *state) mergeInto(dst, base *state) {
	applyChanges(dst.clubs, base.clubs, s.clubs)
	applyChanges(dst.opponents, base.opponents, s.opponents)
	applyChanges(dst.players, base.players, s.players)
	applyChanges(dst.opponentPlayers, base.opponentPlayers, s.opponentPlayers)
	applyChanges(dst.matches, base.matches, s.matches)
	applyChanges(dst.lineups, base.lineups, s.lineups)
	applyChanges(dst.goals, base.goals, s.goals)
	applyChanges(dst.events, base.events, s.events)
	applyChanges(dst.matchStats, base.matchStats, s.matchStats)
	applyChanges(dst.playerStats, base.playerStats, s.playerStats)
	applyChanges(dst.clubSeasons, base.clubSeasons, s.clubSeasons)
	applyChanges(dst.playerSeasons, base.playerSeasons, s.playerSeasons)
}

func applyChanges[V any](dst, base, work map[string]V) {
	for key, value := range work {
		if old, ok := base[key]; !ok || !reflect.DeepEqual(old, value) {
			dst[key] = value
		}
	}
	for key := range base {
		if _, ok := work[key]; !ok {
			delete(dst, key)
		}
	}
}

// Store is an in-process backend with the same unit-of-work contract as postgres. Each
// transaction works on a private copy that replaces the committed state only on success.
type Store struct {
	txMu      sync.Mutex
	mu        sync.RWMutex
	committed *state

	overlapping bool
	onSnapshot  func(ctx context.Context)
}

var _ storage.UnitOfWork = (*Store)(nil)

func NewStore(clubs ...club.Club) *Store {
	st := newState()
	for _, c := range clubs {
		st.clubs[c.ID] = c
	}
	return &Store{committed: st}
}

// NewConcurrentStore returns a store whose transactions overlap the way read-committed
// postgres transactions do: each one reads the snapshot taken when it began, and its commit
// writes back only the rows it changed. Two transactions that read the same row and both
// rewrite it lose one update, so callers must serialize that work themselves.
func NewConcurrentStore(clubs ...club.Club) *Store {
	store := NewStore(clubs...)
	store.overlapping = true
	return store
}

// OnSnapshot installs fn to run in every transaction right after its snapshot is taken.
func (s *Store) OnSnapshot(fn func(ctx context.Context)) {
	s.onSnapshot = fn
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error) error {
	if !s.overlapping {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	base := s.committed
	work := base.clone()
	s.mu.RUnlock()

	if s.onSnapshot != nil {
		s.onSnapshot(ctx)
	}

	if err := fn(ctx, repositoriesFor(work)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.overlapping {
		s.committed = work
		return nil
	}
	next := s.committed.clone()
	work.mergeInto(next, base)
	s.committed = next
	return nil
}

// Read runs fn against the committed state. Writes made through repos are discarded.
func (s *Store) Read(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error) error {
	s.mu.RLock()
	view := s.committed.clone()
	s.mu.RUnlock()
	return fn(ctx, repositoriesFor(view))
}

// Counts reports committed row counts per table.
type Counts struct {
	Clubs           int
	Opponents       int
	Players         int
	OpponentPlayers int
	Matches         int
	LineupRows      int
	Goals           int
	Events          int
	MatchStats      int
	PlayerStats     int
	ClubSeasons     int
	PlayerSeasons   int
}

func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.committed
	return Counts{
		Clubs:           len(st.clubs),
		Opponents:       len(st.opponents),
		Players:         len(st.players),
		OpponentPlayers: len(st.opponentPlayers),
		Matches:         len(st.matches),
		LineupRows:      countRows(st.lineups),
		Goals:           countRows(st.goals),
		Events:          countRows(st.events),
		MatchStats:      countRows(st.matchStats),
		PlayerStats:     countRows(st.playerStats),
		ClubSeasons:     len(st.clubSeasons),
		PlayerSeasons:   countRows(st.playerSeasons),
	}
}

func countRows[T any](m map[string][]T) int {
	n := 0
	for _, rows := range m {
		n += len(rows)
	}
	return n
}

func repositoriesFor(st *state) storage.Repositories {
	return storage.Repositories{
		Clubs:           clubRepository{st},
		Opponents:       opponentRepository{st},
		Players:         playerRepository{st},
		OpponentPlayers: opponentPlayerRepository{st},
		Matches:         matchRepository{st},
		Lineups:         lineupRepository{st},
		Goals:           goalRepository{st},
		Events:          eventRepository{st},
		MatchStats:      matchStatsRepository{st},
		PlayerStats:     playerStatsRepository{st},
		Seasons:         seasonRepository{st},
	}
}

// appendRows never writes into a backing array another state version may share.
func appendRows[T any](existing []T, rows []T) []T {
	return append(slices.Clip(existing), rows...)
}
