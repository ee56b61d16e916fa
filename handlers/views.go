// handlers/views.go
package handlers

import (
	"time"

	"basketball-league/models"
	"basketball-league/services"
	"basketball-league/utils"
)

type userView struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	LoginCount     int64  `json:"login_count"`
	TotalTimeSpent string `json:"total_time_spent"`
}

type registeredView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type playerView struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Height       float64 `json:"height"`
	AverageScore float64 `json:"average_score"`
	GamesPlayed  int64   `json:"games_played"`
	Team         string  `json:"team"`
}

type teamView struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Coach        userView     `json:"coach"`
	Players      []playerView `json:"players"`
	AverageScore float64      `json:"average_score"`
}

type winnerView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type gameView struct {
	ID         string      `json:"id"`
	Team1      teamView    `json:"team1"`
	Team2      teamView    `json:"team2"`
	Team1Score int64       `json:"team1_score"`
	Team2Score int64       `json:"team2_score"`
	Winner     *winnerView `json:"winner"`
	Date       time.Time   `json:"date"`
}

type statisticsView struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	LoginCount     int64  `json:"login_count"`
	TotalTimeSpent string `json:"total_time_spent"`
	IsOnline       bool   `json:"is_online"`
}

func newUserView(u *models.User) userView {
	return userView{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Role:           u.Role,
		LoginCount:     u.LoginCount,
		TotalTimeSpent: utils.FormatDuration(u.TotalTimeSpent),
	}
}

func newRegisteredView(u *models.User) registeredView {
	return registeredView{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

func newPlayerView(p *models.Player) playerView {
	return playerView{
		ID:           p.ID,
		Name:         p.Name,
		Height:       p.Height,
		AverageScore: p.AverageScore,
		GamesPlayed:  p.GamesPlayed,
		Team:         p.TeamID,
	}
}

func newPlayerViews(players []models.Player) []playerView {
	out := make([]playerView, 0, len(players))
	for i := range players {
		out = append(out, newPlayerView(&players[i]))
	}
	return out
}

func newTeamView(t *models.Team) teamView {
	return teamView{
		ID:           t.ID,
		Name:         t.Name,
		Coach:        newUserView(&t.Coach),
		Players:      newPlayerViews(t.Players),
		AverageScore: t.AverageScore,
	}
}

func newTeamViews(teams []models.Team) []teamView {
	out := make([]teamView, 0, len(teams))
	for i := range teams {
		out = append(out, newTeamView(&teams[i]))
	}
	return out
}

func newGameView(g *models.Game) gameView {
	view := gameView{
		ID:         g.ID,
		Team1:      newTeamView(&g.Team1),
		Team2:      newTeamView(&g.Team2),
		Team1Score: g.Team1Score,
		Team2Score: g.Team2Score,
		Date:       g.Date,
	}
	if g.Winner != nil {
		view.Winner = &winnerView{ID: g.Winner.ID, Name: g.Winner.Name}
	}
	return view
}

func newGameViews(games []models.Game) []gameView {
	out := make([]gameView, 0, len(games))
	for i := range games {
		out = append(out, newGameView(&games[i]))
	}
	return out
}

func newStatisticsViews(stats []services.UserStatistics) []statisticsView {
	out := make([]statisticsView, 0, len(stats))
	for _, st := range stats {
		out = append(out, statisticsView{
			ID:             st.ID,
			Username:       st.Username,
			LoginCount:     st.LoginCount,
			TotalTimeSpent: utils.FormatDuration(st.TotalTimeSpent),
			IsOnline:       st.IsOnline,
		})
	}
	return out
}
