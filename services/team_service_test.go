package services

import (
	"fmt"
	"testing"

	"basketball-league/events"
	"basketball-league/models"
)

func TestCreateTeam(t *testing.T) {
	f := newFixture(t)
	coach := f.coach(t, 1)

	team, err := f.teams.CreateTeam(coach, "  Chicago Bulls ")
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if team.Name != "Chicago Bulls" || team.Slug != "chicago-bulls" {
		t.Fatalf("team = %+v", team)
	}
	if team.CoachID != coach.ID || team.Coach.ID != coach.ID {
		t.Fatalf("team coach = %q, want %q", team.CoachID, coach.ID)
	}
	if got := f.pub.types(); len(got) != 1 || got[0] != events.TeamCreated {
		t.Fatalf("events = %v", got)
	}
}

func TestCreateTeamRejectsSecondTeam(t *testing.T) {
	f := newFixture(t)
	coach := f.coach(t, 1)
	f.team(t, coach)

	_, err := f.teams.CreateTeam(coach, "Another")
	assertErrorIs(t, err, ErrCoachAlreadyHasTeam)

	var count int64
	f.db.Model(&models.Team{}).Where("coach_id = ?", coach.ID).Count(&count)
	if count != 1 {
		t.Fatalf("teams for coach = %d, want 1", count)
	}
}

func TestCreateTeamRequiresCoach(t *testing.T) {
	f := newFixture(t)
	_, err := f.teams.CreateTeam(f.player(t, 1), "Team")
	assertErrorIs(t, err, ErrForbidden)

	_, err = f.teams.CreateTeam(nil, "Team")
	assertErrorIs(t, err, ErrUnauthorized)

	_, err = f.teams.CreateTeam(f.coach(t, 1), "   ")
	assertErrorIs(t, err, ErrValidation)
}

func TestJoinTeam(t *testing.T) {
	f := newFixture(t)
	team := f.team(t, f.coach(t, 1))
	user := f.player(t, 1)

	player, err := f.teams.JoinTeam(user, team.ID, "John Doe", 6.5)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if player.TeamID != team.ID || player.GamesPlayed != 0 || player.AverageScore != 0 {
		t.Fatalf("player = %+v", player)
	}
	if player.UserID == nil || *player.UserID != user.ID {
		t.Fatalf("player not bound to user")
	}

	_, err = f.teams.JoinTeam(user, team.ID, "John Again", 6.5)
	assertErrorIs(t, err, ErrPlayerAlreadyAssigned)
}

func TestJoinTeamErrors(t *testing.T) {
	f := newFixture(t)
	team := f.team(t, f.coach(t, 1))

	_, err := f.teams.JoinTeam(f.player(t, 1), "missing", "John", 6.5)
	assertErrorIs(t, err, ErrTeamNotFound)

	_, err = f.teams.JoinTeam(f.player(t, 2), team.ID, "John", "tall")
	assertErrorIs(t, err, ErrValidation)

	_, err = f.teams.JoinTeam(f.player(t, 3), team.ID, "", 6.5)
	assertErrorIs(t, err, ErrValidation)

	_, err = f.teams.JoinTeam(f.coach(t, 2), team.ID, "Coach", 6.5)
	assertErrorIs(t, err, ErrForbidden)
}

func TestJoinTeamCapsRoster(t *testing.T) {
	f := newFixture(t)
	team := f.team(t, f.coach(t, 1))

	for i := 0; i < models.MaxPlayersPerTeam; i++ {
		if _, err := f.teams.JoinTeam(f.player(t, i), team.ID, fmt.Sprintf("Player %d", i), 6.0); err != nil {
			t.Fatalf("join %d: %v", i, err)
		}
	}

	_, err := f.teams.JoinTeam(f.player(t, 99), team.ID, "Eleventh", 6.0)
	assertErrorIs(t, err, ErrTeamFull)

	var count int64
	f.db.Model(&models.Player{}).Where("team_id = ?", team.ID).Count(&count)
	if count != models.MaxPlayersPerTeam {
		t.Fatalf("roster = %d, want %d", count, models.MaxPlayersPerTeam)
	}
}

func TestGetTeamOwnership(t *testing.T) {
	f := newFixture(t)
	owner := f.coach(t, 1)
	other := f.coach(t, 2)
	team := f.team(t, owner)
	f.rosterEntry(t, team, "Player 1", 10)

	got, err := f.teams.GetTeam(owner, team.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if got.Coach.ID != owner.ID || len(got.Players) != 1 {
		t.Fatalf("team = %+v", got)
	}

	_, err = f.teams.GetTeam(other, team.ID)
	assertErrorIs(t, err, ErrForbidden)

	_, err = f.teams.GetTeam(owner, "missing")
	assertErrorIs(t, err, ErrTeamNotFound)
}

func TestListTeams(t *testing.T) {
	f := newFixture(t)
	f.team(t, f.coach(t, 1))
	f.team(t, f.coach(t, 2))

	teams, err := f.teams.ListTeams()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("teams = %d, want 2", len(teams))
	}
	for _, team := range teams {
		if team.Coach.ID == "" {
			t.Fatalf("coach not loaded for %s", team.Name)
		}
	}
}

func TestListPlayersPercentileFilter(t *testing.T) {
	f := newFixture(t)
	coach := f.coach(t, 1)
	team := f.team(t, coach)
	for i := 1; i <= 10; i++ {
		f.rosterEntry(t, team, fmt.Sprintf("Player %d", i), float64(i*10))
	}

	all, err := f.teams.ListPlayers(coach, team.ID, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 10 {
		t.Fatalf("unfiltered = %d, want 10", len(all))
	}

	// threshold is the value at index 8 of the sorted scores: 90
	top, err := f.teams.ListPlayers(coach, team.ID, true)
	if err != nil {
		t.Fatalf("list top: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("filtered = %d, want 2", len(top))
	}
	for _, p := range top {
		if p.AverageScore < 90 {
			t.Fatalf("player %s below threshold: %v", p.Name, p.AverageScore)
		}
	}
}

func TestListPlayersPercentileWithoutThreshold(t *testing.T) {
	f := newFixture(t)
	coach := f.coach(t, 1)
	team := f.team(t, coach)

	empty, err := f.teams.ListPlayers(coach, team.ID, true)
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty roster = %d", len(empty))
	}

	// one score gives index -1, so nothing is filtered
	f.rosterEntry(t, team, "Solo", 12)
	solo, err := f.teams.ListPlayers(coach, team.ID, true)
	if err != nil {
		t.Fatalf("list solo: %v", err)
	}
	if len(solo) != 1 {
		t.Fatalf("solo roster = %d, want 1", len(solo))
	}
}

func TestListPlayersRequiresOwner(t *testing.T) {
	f := newFixture(t)
	team := f.team(t, f.coach(t, 1))

	_, err := f.teams.ListPlayers(f.coach(t, 2), team.ID, false)
	assertErrorIs(t, err, ErrForbidden)

	_, err = f.teams.ListPlayers(f.coach(t, 3), "missing", false)
	assertErrorIs(t, err, ErrTeamNotFound)
}

func TestUpdateTeamAverageScore(t *testing.T) {
	f := newFixture(t)
	team := f.team(t, f.coach(t, 1))

	updated, err := f.teams.UpdateTeamAverageScore(team.ID, 55.5)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.AverageScore != 55.5 {
		t.Fatalf("average = %v", updated.AverageScore)
	}

	for _, falsy := range []any{nil, 0, 0.0, "", false} {
		got, err := f.teams.UpdateTeamAverageScore(team.ID, falsy)
		if err != nil {
			t.Fatalf("falsy %v: %v", falsy, err)
		}
		if got.AverageScore != 55.5 {
			t.Fatalf("falsy %#v changed average to %v", falsy, got.AverageScore)
		}
	}

	_, err = f.teams.UpdateTeamAverageScore(team.ID, "abc")
	assertErrorIs(t, err, ErrValidation)

	_, err = f.teams.UpdateTeamAverageScore("missing", 10)
	assertErrorIs(t, err, ErrTeamNotFound)
}
