package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/match-ingest/internal/domain/feed"
	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/season"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
	"github.com/riskibarqy/match-ingest/internal/platform/id"
	"github.com/riskibarqy/match-ingest/internal/platform/lock"
	"github.com/riskibarqy/match-ingest/internal/platform/logging"
	"github.com/riskibarqy/match-ingest/internal/platform/resilience"
)

// IngestInput is one administrative match upload.
type IngestInput struct {
	ClubID           string      `validate:"required,max=64"`
	OpponentName     string      `validate:"required,max=200"`
	OpponentCrestURL string      `validate:"omitempty,url"`
	MatchDate        time.Time   `validate:"required"`
	Venue            match.Venue `validate:"omitempty,oneof=home away"`
	HomeScore        int         `validate:"gte=0,lte=99"`
	AwayScore        int         `validate:"gte=0,lte=99"`
	Feed             []byte      `validate:"required,min=2"`
	Replace          bool
}

type IngestResult struct {
	MatchID                string        `json:"match_id"`
	OpponentID             string        `json:"opponent_id"`
	OpponentCreated        bool          `json:"opponent_created"`
	Replaced               bool          `json:"replaced"`
	Resolution             string        `json:"resolution"`
	Score                  string        `json:"score"`
	Result                 match.Result  `json:"result"`
	EventsStored           int           `json:"events_stored"`
	GoalsExtracted         int           `json:"goals_extracted"`
	PlayersCreated         int           `json:"players_created"`
	PlayersUpdated         int           `json:"players_updated"`
	OpponentPlayersCreated int           `json:"opponent_players_created"`
	OpponentPlayersUpdated int           `json:"opponent_players_updated"`
	LineupRows             int           `json:"lineup_rows"`
	PlayerStatRows         int           `json:"player_stat_rows"`
	JoinCodes              []NewJoinCode `json:"join_codes"`
}

type IngestionConfig struct {
	EventBatchSize      int
	SimilarityThreshold float64
	FormLength          int
	AttributeWeights    season.AttributeWeights
	// Timeout bounds one ingestion, including the wait for the club lock.
	Timeout        time.Duration
	RebuildWorkers int
}

func DefaultIngestionConfig() IngestionConfig {
	return IngestionConfig{
		EventBatchSize:      DefaultEventBatchSize,
		SimilarityThreshold: DefaultNameSimilarityThreshold,
		FormLength:          season.DefaultFormLength,
		AttributeWeights:    season.DefaultAttributeWeights(),
		RebuildWorkers:      4,
	}
}

// IngestionService runs every component for one upload inside a single transaction.
type IngestionService struct {
	uow        storage.UnitOfWork
	clubLocks  *lock.KeyedMutex
	recomputes resilience.SingleFlight[SeasonRollupResult]
	validate   *validator.Validate
	logger     *logging.Logger
	cfg        IngestionConfig

	resolver    *TeamResolver
	opponents   *OpponentRegistry
	registrar   *MatchRegistrar
	roster      *RosterReconciler
	snapshotter *LineupSnapshotter
	eventStore  *EventStore
	goals       *GoalExtractor
	matchStats  *MatchStatsAggregator
	playerStats *PlayerStatsAggregator
	rollup      *SeasonRollup
}

func NewIngestionService(
	uow storage.UnitOfWork,
	ids id.Generator,
	codes id.CodeGenerator,
	cfg IngestionConfig,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.RebuildWorkers <= 0 {
		cfg.RebuildWorkers = 1
	}

	return &IngestionService{
		uow:       uow,
		clubLocks: &lock.KeyedMutex{},
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger.Named("ingestion"),
		cfg:       cfg,

		resolver:    NewTeamResolver(cfg.SimilarityThreshold),
		opponents:   NewOpponentRegistry(ids),
		registrar:   NewMatchRegistrar(ids),
		roster:      NewRosterReconciler(ids, codes),
		snapshotter: NewLineupSnapshotter(ids),
		eventStore:  NewEventStore(ids, cfg.EventBatchSize),
		goals:       NewGoalExtractor(ids),
		matchStats:  NewMatchStatsAggregator(),
		playerStats: NewPlayerStatsAggregator(),
		rollup:      NewSeasonRollup(cfg.FormLength, cfg.AttributeWeights),
	}
}

// Ingest processes one match upload atomically: on any error nothing it wrote is kept.
func (s *IngestionService) Ingest(ctx context.Context, input IngestInput) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Ingest", attribute.String("club_id", input.ClubID))
	defer span.End()

	started := time.Now()
	result, err := s.ingest(ctx, input)
	if err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "match ingestion failed",
			"club_id", input.ClubID,
			"opponent", input.OpponentName,
			"match_date", input.MatchDate.Format(time.DateOnly),
			"error", err,
		)
		return IngestResult{}, err
	}

	s.logger.InfoContext(ctx, "match ingested",
		"club_id", input.ClubID,
		"match_id", result.MatchID,
		"score", result.Score,
		"result", result.Result,
		"events_stored", result.EventsStored,
		"goals", result.GoalsExtracted,
		"players_created", result.PlayersCreated,
		"players_updated", result.PlayersUpdated,
		"replaced", result.Replaced,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return result, nil
}

func (s *IngestionService) ingest(ctx context.Context, input IngestInput) (IngestResult, error) {
	input.ClubID = strings.TrimSpace(input.ClubID)
	input.OpponentName = strings.TrimSpace(input.OpponentName)
	input.OpponentCrestURL = strings.TrimSpace(input.OpponentCrestURL)
	input.Venue = match.NormalizeVenue(string(input.Venue))
	if err := s.validate.StructCtx(ctx, input); err != nil {
		return IngestResult{}, errors.Wrap(ErrValidation, err.Error())
	}

	events, err := feed.Parse(input.Feed)
	if err != nil {
		return IngestResult{}, errors.Wrap(ErrValidation, err.Error())
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	unlock, err := s.clubLocks.Lock(ctx, input.ClubID)
	if err != nil {
		return IngestResult{}, fmt.Errorf("wait for club %s: %w", input.ClubID, err)
	}
	defer unlock()

	var result IngestResult
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		var runErr error
		result, runErr = s.run(ctx, repos, input, events)
		return runErr
	})
	if err != nil {
		return IngestResult{}, err
	}
	return result, nil
}

func (s *IngestionService) run(ctx context.Context, repos storage.Repositories, input IngestInput, events []feed.Event) (IngestResult, error) {
	ourClub, ok, err := repos.Clubs.GetByID(ctx, input.ClubID)
	if err != nil {
		return IngestResult{}, fmt.Errorf("get club: %w", err)
	}
	if !ok {
		return IngestResult{}, errors.Wrapf(ErrNotFound, "club %s", input.ClubID)
	}

	teams, err := s.resolver.Resolve(ctx, ourClub.Name, ourClub.ExternalTeamID, events)
	if err != nil {
		return IngestResult{}, err
	}
	if teams.LearnedExternalID > 0 {
		if err := repos.Clubs.SetExternalTeamID(ctx, ourClub.ID, teams.LearnedExternalID); err != nil {
			return IngestResult{}, fmt.Errorf("record club external team id: %w", err)
		}
	}

	opponent, opponentCreated, err := s.opponents.Upsert(ctx, repos.Opponents, teams.Opponent, input.OpponentName, input.OpponentCrestURL)
	if err != nil {
		return IngestResult{}, err
	}

	m, replaced, err := s.registrar.Register(ctx, repos.Matches, RegisterMatchInput{
		ClubID:       ourClub.ID,
		OpponentID:   opponent.ID,
		MatchDate:    input.MatchDate,
		Venue:        input.Venue,
		EnteredScore: match.Score{Home: input.HomeScore, Away: input.AwayScore},
		Teams:        teams,
		Replace:      input.Replace,
	}, events)
	if err != nil {
		return IngestResult{}, err
	}

	roster, err := s.roster.Reconcile(ctx, repos.Players, repos.OpponentPlayers, ourClub.ID, opponent.ID, teams.Ours.Lineup, teams.Opponent.Lineup)
	if err != nil {
		return IngestResult{}, err
	}

	lineupRows, err := s.snapshotter.Snapshot(ctx, repos.Lineups, m.ID, teams.Ours.Lineup, teams.Opponent.Lineup, roster)
	if err != nil {
		return IngestResult{}, err
	}

	stored, err := s.eventStore.Store(ctx, repos.Events, m.ID, teams, events)
	if err != nil {
		return IngestResult{}, err
	}

	goals, err := s.goals.Extract(ctx, repos.Goals, m.ID, teams, events)
	if err != nil {
		return IngestResult{}, err
	}
	if len(goals) != m.ComputedScore.Home+m.ComputedScore.Away {
		return IngestResult{}, errors.Wrapf(ErrConsistency, "extracted %d goals for a %s score", len(goals), m.ComputedScore)
	}

	if _, err := s.matchStats.Aggregate(ctx, repos.Events, repos.MatchStats, m, events); err != nil {
		return IngestResult{}, err
	}
	playerRows, err := s.playerStats.Aggregate(ctx, repos.Events, repos.Lineups, repos.PlayerStats, m, events)
	if err != nil {
		return IngestResult{}, err
	}

	if _, err := s.rollup.Recompute(ctx, repos, ourClub.ID); err != nil {
		return IngestResult{}, err
	}

	joinCodes := roster.JoinCodes
	if joinCodes == nil {
		joinCodes = []NewJoinCode{}
	}
	return IngestResult{
		MatchID:                m.ID,
		OpponentID:             opponent.ID,
		OpponentCreated:        opponentCreated,
		Replaced:               replaced,
		Resolution:             teams.Strategy.String() + ":" + teams.Rule,
		Score:                  m.ComputedScore.String(),
		Result:                 m.Result,
		EventsStored:           len(stored),
		GoalsExtracted:         len(goals),
		PlayersCreated:         roster.Created,
		PlayersUpdated:         roster.Updated,
		OpponentPlayersCreated: roster.OpponentCreated,
		OpponentPlayersUpdated: roster.OpponentUpdated,
		LineupRows:             len(lineupRows),
		PlayerStatRows:         len(playerRows),
		JoinCodes:              joinCodes,
	}, nil
}

// RecomputeClubSeason rebuilds one club's rollups in its own transaction.
func (s *IngestionService) RecomputeClubSeason(ctx context.Context, clubID string) (SeasonRollupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RecomputeClubSeason", attribute.String("club_id", clubID))
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return SeasonRollupResult{}, errors.Wrap(ErrValidation, "club id is required")
	}

	// Callers arriving while a recompute for the club is running share its result, so the
	// shared run is detached from any single caller's cancellation and bounded by the timeout.
	runCtx := context.WithoutCancel(ctx)
	type outcome struct {
		result SeasonRollupResult
		err    error
		shared bool
	}
	done := make(chan outcome, 1)
	go func() {
		result, err, shared := s.recomputes.Do(clubID, func() (SeasonRollupResult, error) {
			if s.cfg.Timeout > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(runCtx, s.cfg.Timeout)
				defer cancel()
			}
			return s.recomputeClubSeason(runCtx, clubID)
		})
		done <- outcome{result: result, err: err, shared: shared}
	}()

	select {
	case <-ctx.Done():
		recordSpanError(span, ctx.Err())
		return SeasonRollupResult{}, ctx.Err()
	case out := <-done:
		if out.err != nil {
			recordSpanError(span, out.err)
			return SeasonRollupResult{}, out.err
		}
		span.SetAttributes(attribute.Bool("shared", out.shared))
		return out.result, nil
	}
}

func (s *IngestionService) recomputeClubSeason(ctx context.Context, clubID string) (SeasonRollupResult, error) {
	unlock, err := s.clubLocks.Lock(ctx, clubID)
	if err != nil {
		return SeasonRollupResult{}, fmt.Errorf("wait for club %s: %w", clubID, err)
	}
	defer unlock()

	var result SeasonRollupResult
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		if _, ok, err := repos.Clubs.GetByID(ctx, clubID); err != nil {
			return fmt.Errorf("get club: %w", err)
		} else if !ok {
			return errors.Wrapf(ErrNotFound, "club %s", clubID)
		}
		var recomputeErr error
		result, recomputeErr = s.rollup.Recompute(ctx, repos, clubID)
		return recomputeErr
	})
	if err != nil {
		return SeasonRollupResult{}, err
	}
	return result, nil
}

type RebuildResult struct {
	Clubs  int `json:"clubs"`
	Failed int `json:"failed"`
}

// RebuildAllSeasons recomputes every club's rollups, a bounded number of clubs at a time.
func (s *IngestionService) RebuildAllSeasons(ctx context.Context) (RebuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RebuildAllSeasons")
	defer span.End()

	var clubIDs []string
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		ids, err := repos.Clubs.ListIDs(ctx)
		clubIDs = ids
		return err
	})
	if err != nil {
		return RebuildResult{}, fmt.Errorf("list clubs: %w", err)
	}

	var failed atomic.Int32
	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.cfg.RebuildWorkers)
	for _, clubID := range clubIDs {
		p.Go(func(ctx context.Context) error {
			if _, err := s.RecomputeClubSeason(ctx, clubID); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "season rebuild failed", "club_id", clubID, "error", err)
				return fmt.Errorf("club %s: %w", clubID, err)
			}
			return nil
		})
	}
	err = p.Wait()

	result := RebuildResult{Clubs: len(clubIDs), Failed: int(failed.Load())}
	s.logger.InfoContext(ctx, "season rebuild finished", "clubs", result.Clubs, "failed", result.Failed)
	if err != nil {
		recordSpanError(span, err)
		return result, err
	}
	return result, nil
}
