package models

import "time"

// Result — итог выступления команды в завершённом турнире.
type Result struct {
	ID           string    `json:"id" db:"id"`
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	TeamID       string    `json:"team_id" db:"team_id"`
	Position     int       `json:"position" db:"position"`
	Kills        int       `json:"kills" db:"kills"`
	Points       int       `json:"points" db:"points"`
	PrizeWon     *int64    `json:"prize_won,omitempty" db:"prize_won"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
