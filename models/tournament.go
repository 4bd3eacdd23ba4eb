package models

import (
	"strings"
	"time"
)

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "upcoming"
	StatusOngoing   TournamentStatus = "ongoing"
	StatusCompleted TournamentStatus = "completed"
	StatusCancelled TournamentStatus = "cancelled"
)

// Game — поддерживаемые игры платформы.
type Game string

const (
	GameBGMI     Game = "BGMI"
	GameFreeFire Game = "FreeFire"
)

// Tournament представляет турнир.
type Tournament struct {
	ID                string           `json:"id" db:"id"`
	Title             string           `json:"title" db:"title"`
	Game              Game             `json:"game" db:"game"`
	Mode              string           `json:"mode" db:"mode"`
	Description       string           `json:"description" db:"description"`
	PrizePool         int64            `json:"prize_pool" db:"prize_pool"`
	EntryFee          int64            `json:"entry_fee" db:"entry_fee"`
	MaxTeams          int              `json:"max_teams" db:"max_teams"`
	MaxPlayers        int              `json:"max_players,omitempty" db:"max_players"`
	RegisteredTeams   int              `json:"registered_teams" db:"registered_teams"`
	RegisteredPlayers int              `json:"registered_players" db:"registered_players"`
	Status            TournamentStatus `json:"status" db:"status"`
	StartDate         time.Time        `json:"start_date" db:"start_date"`
	EndDate           time.Time        `json:"end_date" db:"end_date"`
	Rules             string           `json:"rules" db:"rules"`
	MapType           *string          `json:"map_type,omitempty" db:"map_type"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
	ImageKey          *string          `json:"-" db:"image_key"`
	ImageURL          *string          `json:"image_url,omitempty" db:"-"`
}

// IsSoloMode определяет, является ли турнир одиночным. Регистр не учитывается.
func (t *Tournament) IsSoloMode() bool {
	return strings.EqualFold(t.Mode, "solo")
}

// RegisteredCount возвращает счётчик регистраций, релевантный режиму турнира.
func (t *Tournament) RegisteredCount() int {
	if t.IsSoloMode() {
		return t.RegisteredPlayers
	}
	return t.RegisteredTeams
}

// MaxCapacity возвращает предел регистраций, релевантный режиму турнира.
// Для Solo используется max_players с откатом на max_teams, если он не задан.
func (t *Tournament) MaxCapacity() int {
	if t.IsSoloMode() && t.MaxPlayers > 0 {
		return t.MaxPlayers
	}
	return t.MaxTeams
}
