package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/platform/logging"
	"github.com/riskibarqy/match-ingest/internal/usecase"
)

const matchDateLayout = "2006-01-02"

// MatchIngester is the core the admin routes call into.
type MatchIngester interface {
	Ingest(ctx context.Context, input usecase.IngestInput) (usecase.IngestResult, error)
	RecomputeClubSeason(ctx context.Context, clubID string) (usecase.SeasonRollupResult, error)
}

type Handler struct {
	ingester     MatchIngester
	maxBodyBytes int64
	logger       *logging.Logger
}

func NewHandler(ingester MatchIngester, maxBodyBytes int64, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 32 << 20
	}
	return &Handler{
		ingester:     ingester,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// UploadMatch ingests one raw feed. The body is the feed document; match metadata travels in
// the query string: opponent, date (YYYY-MM-DD), home_score, away_score and optionally venue,
// opponent_crest_url and replace.
func (h *Handler) UploadMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "UploadMatch")
	defer span.End()

	input, err := parseUploadQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(http.MaxBytesReader(w, r.Body, h.maxBodyBytes)); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(ctx, w, fmt.Errorf("%w: feed exceeds %d bytes", errPayloadTooLarge, maxErr.Limit))
			return
		}
		writeError(ctx, w, fmt.Errorf("%w: read feed body: %v", usecase.ErrValidation, err))
		return
	}
	input.Feed = buf.B

	result, err := h.ingester.Ingest(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "match upload rejected",
			"club_id", input.ClubID,
			"opponent", input.OpponentName,
			"match_date", input.MatchDate.Format(matchDateLayout),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusCreated
	if result.Replaced {
		status = http.StatusOK
	}
	writeSuccess(w, status, result)
}

func (h *Handler) RecomputeSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RecomputeSeason")
	defer span.End()

	clubID := strings.TrimSpace(r.PathValue("clubID"))
	result, err := h.ingester.RecomputeClubSeason(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "season recompute failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, clubSeasonDTO{
		ClubID:        result.Club.ClubID,
		MatchesPlayed: result.Club.MatchesPlayed,
		Wins:          result.Club.Wins,
		Draws:         result.Club.Draws,
		Losses:        result.Club.Losses,
		GoalsFor:      result.Club.GoalsFor,
		GoalsAgainst:  result.Club.GoalsAgainst,
		CleanSheets:   result.Club.CleanSheets,
		Form:          result.Club.Form,
		PlayerRows:    len(result.Players),
	})
}

type clubSeasonDTO struct {
	ClubID        string `json:"club_id"`
	MatchesPlayed int    `json:"matches_played"`
	Wins          int    `json:"wins"`
	Draws         int    `json:"draws"`
	Losses        int    `json:"losses"`
	GoalsFor      int    `json:"goals_for"`
	GoalsAgainst  int    `json:"goals_against"`
	CleanSheets   int    `json:"clean_sheets"`
	Form          string `json:"form"`
	PlayerRows    int    `json:"player_rows"`
}

func parseUploadQuery(r *http.Request) (usecase.IngestInput, error) {
	query := r.URL.Query()
	input := usecase.IngestInput{
		ClubID:           strings.TrimSpace(r.PathValue("clubID")),
		OpponentName:     strings.TrimSpace(query.Get("opponent")),
		OpponentCrestURL: strings.TrimSpace(query.Get("opponent_crest_url")),
		Venue:            match.NormalizeVenue(query.Get("venue")),
	}

	rawDate := strings.TrimSpace(query.Get("date"))
	if rawDate == "" {
		return usecase.IngestInput{}, fmt.Errorf("%w: date is required", usecase.ErrValidation)
	}
	date, err := time.Parse(matchDateLayout, rawDate)
	if err != nil {
		return usecase.IngestInput{}, fmt.Errorf("%w: date must be YYYY-MM-DD", usecase.ErrValidation)
	}
	input.MatchDate = date

	if input.HomeScore, err = scoreParam(query.Get("home_score"), "home_score"); err != nil {
		return usecase.IngestInput{}, err
	}
	if input.AwayScore, err = scoreParam(query.Get("away_score"), "away_score"); err != nil {
		return usecase.IngestInput{}, err
	}

	if raw := strings.TrimSpace(query.Get("replace")); raw != "" {
		replace, err := strconv.ParseBool(raw)
		if err != nil {
			return usecase.IngestInput{}, fmt.Errorf("%w: replace must be a boolean", usecase.ErrValidation)
		}
		input.Replace = replace
	}

	return input, nil
}

func scoreParam(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", usecase.ErrValidation, name)
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", usecase.ErrValidation, name)
	}
	return value, nil
}
