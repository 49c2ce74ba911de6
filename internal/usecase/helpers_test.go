package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/match-ingest/internal/domain/club"
	"github.com/riskibarqy/match-ingest/internal/domain/feed/feedtest"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
	"github.com/riskibarqy/match-ingest/internal/infrastructure/repository/memory"
)

const testClubID = "club-harbour"

var (
	homeTeam = feedtest.NewTeam(100, "Harbour Athletic", 1000)
	awayTeam = feedtest.NewTeam(200, "Coastal United", 2000)
)

type sequenceIDs struct {
	prefix string
	n      atomic.Int64
}

func (g *sequenceIDs) NewID() (string, error) {
	return fmt.Sprintf("%s-%04d", g.prefix, g.n.Add(1)), nil
}

// scriptedCodes hands out the scripted codes first, then unique generated ones.
type scriptedCodes struct {
	mu     sync.Mutex
	codes  []string
	served int
}

func (g *scriptedCodes) NewCode() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.served++
	if len(g.codes) > 0 {
		code := g.codes[0]
		g.codes = g.codes[1:]
		return code, nil
	}
	return fmt.Sprintf("CODE%04d", g.served), nil
}

func newTestStore() *memory.Store {
	return memory.NewStore(club.Club{ID: testClubID, Name: "Harbour Athletic"})
}

func newTestService(store *memory.Store) *IngestionService {
	return NewIngestionService(store, &sequenceIDs{prefix: "id"}, &scriptedCodes{}, DefaultIngestionConfig(), nil)
}

// standardFeed is a 2-1 home win with one extra shootout goal for the away side.
func standardFeed() *feedtest.Builder {
	b := feedtest.New(homeTeam, awayTeam)
	b.Possession(homeTeam).Pass(homeTeam, 1009, 1010).Goal(homeTeam, 1010)
	b.Possession(awayTeam).Pass(awayTeam, 2005, 2006).Shot(awayTeam, 2006, "Saved")
	b.Possession(homeTeam).Dribble(homeTeam, 1007, "Complete").Goal(homeTeam, 1008)
	b.Possession(awayTeam).Goal(awayTeam, 2009)
	b.Period(5).Possession(awayTeam).Goal(awayTeam, 2010)
	return b
}

func standardInput(date time.Time) IngestInput {
	return IngestInput{
		ClubID:       testClubID,
		OpponentName: "Coastal United",
		MatchDate:    date,
		HomeScore:    2,
		AwayScore:    1,
		Feed:         standardFeed().JSON(),
	}
}

func matchDay(day int) time.Time {
	return time.Date(2026, 4, day, 15, 0, 0, 0, time.UTC)
}

// inTx runs fn in a committed memory transaction.
func inTx(t *testing.T, store *memory.Store, fn func(ctx context.Context, repos storage.Repositories) error) {
	t.Helper()
	if err := store.WithinTx(t.Context(), fn); err != nil {
		t.Fatalf("memory transaction failed: %v", err)
	}
}

func read(t *testing.T, store *memory.Store, fn func(ctx context.Context, repos storage.Repositories) error) {
	t.Helper()
	if err := store.Read(t.Context(), fn); err != nil {
		t.Fatalf("memory read failed: %v", err)
	}
}
