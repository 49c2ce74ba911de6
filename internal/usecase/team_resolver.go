package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/match-ingest/internal/domain/feed"
	"github.com/riskibarqy/match-ingest/internal/domain/player"
)

const (
	LineupSize = 11

	DefaultNameSimilarityThreshold = 0.8
)

// ResolutionStrategy is picked once per ingestion, before any comparison runs.
type ResolutionStrategy int

const (
	StrategyByIdentifier ResolutionStrategy = iota + 1
	StrategyByName
)

func (s ResolutionStrategy) String() string {
	switch s {
	case StrategyByIdentifier:
		return "by_identifier"
	case StrategyByName:
		return "by_name"
	default:
		return "unknown"
	}
}

// SelectStrategy uses the stored identifier whenever one is known.
func SelectStrategy(storedExternalTeamID int64) ResolutionStrategy {
	if storedExternalTeamID > 0 {
		return StrategyByIdentifier
	}
	return StrategyByName
}

// FeedTeam is one participant as described by its starting lineup event.
type FeedTeam struct {
	ExternalID int64
	Name       string
	Formation  int
	Lineup     []player.LineupEntry
}

type TeamResolution struct {
	Strategy ResolutionStrategy
	// Rule names the comparison that matched: identifier, exact, substring or similarity.
	Rule     string
	Ours     FeedTeam
	Opponent FeedTeam
	// LearnedExternalID is set when the club had no stored identifier yet.
	LearnedExternalID int64
}

type nameRule struct {
	name  string
	match func(clubName, teamName string) bool
}

type TeamResolver struct {
	rules      []nameRule
	similarity func(a, b string) float64
}

func NewTeamResolver(similarityThreshold float64) *TeamResolver {
	if similarityThreshold <= 0 || similarityThreshold > 1 {
		similarityThreshold = DefaultNameSimilarityThreshold
	}
	r := &TeamResolver{similarity: NameSimilarity}
	r.rules = []nameRule{
		{name: "exact", match: func(a, b string) bool {
			return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
		}},
		{name: "substring", match: func(a, b string) bool {
			a, b = strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
			if a == "" || b == "" {
				return false
			}
			return strings.Contains(a, b) || strings.Contains(b, a)
		}},
		{name: "similarity", match: func(a, b string) bool {
			return r.similarity(a, b) >= similarityThreshold
		}},
	}
	return r
}

// NameSimilarity is 1 minus the Levenshtein distance over the longer name's rune count,
// compared case-insensitively.
func NameSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// Resolve maps the feed's two teams to our club and the opponent.
func (r *TeamResolver) Resolve(ctx context.Context, clubName string, storedExternalTeamID int64, events []feed.Event) (TeamResolution, error) {
	_, span := startUsecaseSpan(ctx, "usecase.TeamResolver.Resolve")
	defer span.End()

	teams, err := StartingTeams(events)
	if err != nil {
		return TeamResolution{}, err
	}

	strategy := SelectStrategy(storedExternalTeamID)
	switch strategy {
	case StrategyByIdentifier:
		for i, team := range teams {
			if team.ExternalID == storedExternalTeamID {
				return TeamResolution{
					Strategy: strategy,
					Rule:     "identifier",
					Ours:     team,
					Opponent: teams[1-i],
				}, nil
			}
		}
		return TeamResolution{}, errors.Wrapf(ErrValidation, "stored team id %d is not a participant of this feed (%d, %d)",
			storedExternalTeamID, teams[0].ExternalID, teams[1].ExternalID)
	default:
		return r.resolveByName(strategy, clubName, teams)
	}
}

func (r *TeamResolver) resolveByName(strategy ResolutionStrategy, clubName string, teams [2]FeedTeam) (TeamResolution, error) {
	clubName = strings.TrimSpace(clubName)
	if clubName == "" {
		return TeamResolution{}, errors.Wrap(ErrValidation, "club name is required to resolve teams by name")
	}

	for _, rule := range r.rules {
		matched := make([]int, 0, 2)
		for i, team := range teams {
			if rule.match(clubName, team.Name) {
				matched = append(matched, i)
			}
		}

		switch len(matched) {
		case 0:
			continue
		case 1:
			ours := teams[matched[0]]
			return TeamResolution{
				Strategy:          strategy,
				Rule:              rule.name,
				Ours:              ours,
				Opponent:          teams[1-matched[0]],
				LearnedExternalID: ours.ExternalID,
			}, nil
		default:
			return TeamResolution{}, errors.Wrapf(ErrValidation, "club name %q is ambiguous: %s rule matches both %q and %q",
				clubName, rule.name, teams[0].Name, teams[1].Name)
		}
	}

	return TeamResolution{}, errors.Wrapf(ErrValidation, "club name %q matches neither %q nor %q",
		clubName, teams[0].Name, teams[1].Name)
}

// StartingTeams reads both starting lineup events. Exactly two must exist, for different
// teams, each listing 11 distinct players.
func StartingTeams(events []feed.Event) ([2]FeedTeam, error) {
	var out [2]FeedTeam

	lineups := feed.StartingLineups(events)
	if len(lineups) != 2 {
		return out, errors.Wrapf(ErrValidation, "expected 2 starting lineup events, found %d", len(lineups))
	}

	for i, ev := range lineups {
		team, err := feedTeamFromLineup(ev)
		if err != nil {
			return out, err
		}
		out[i] = team
	}
	if out[0].ExternalID == out[1].ExternalID {
		return out, errors.Wrapf(ErrValidation, "both starting lineups belong to team %d", out[0].ExternalID)
	}

	return out, nil
}

func feedTeamFromLineup(ev feed.Event) (FeedTeam, error) {
	teamID := ev.TeamID()
	if teamID <= 0 {
		return FeedTeam{}, errors.Wrapf(ErrValidation, "starting lineup event %s has no team", ev.ID)
	}
	if ev.Tactics == nil {
		return FeedTeam{}, errors.Wrapf(ErrValidation, "starting lineup for team %d has no tactics block", teamID)
	}

	team := FeedTeam{
		ExternalID: teamID,
		Name:       ev.TeamName(),
		Formation:  ev.Tactics.Formation,
		Lineup:     make([]player.LineupEntry, 0, len(ev.Tactics.Lineup)),
	}
	seen := make(map[int64]struct{}, len(ev.Tactics.Lineup))
	for _, slot := range ev.Tactics.Lineup {
		playerID := slot.PlayerID()
		if playerID <= 0 {
			return FeedTeam{}, errors.Wrapf(ErrValidation, "starting lineup for team %d has a player without id", teamID)
		}
		if _, dup := seen[playerID]; dup {
			return FeedTeam{}, errors.Wrapf(ErrValidation, "starting lineup for team %d lists player %d twice", teamID, playerID)
		}
		seen[playerID] = struct{}{}
		team.Lineup = append(team.Lineup, player.LineupEntry{
			ExternalPlayerID: playerID,
			Name:             slot.PlayerName(),
			JerseyNumber:     slot.Jersey(),
			Position:         slot.PositionName(),
		})
	}
	if len(team.Lineup) != LineupSize {
		return FeedTeam{}, errors.Wrapf(ErrValidation, "starting lineup for team %d has %d players, expected %d",
			teamID, len(team.Lineup), LineupSize)
	}

	return team, nil
}
