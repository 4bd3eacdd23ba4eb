package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// PaymentStatus — статус оплаты регистрации.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Player — один игрок в составе регистрации.
type Player struct {
	Name     string `json:"name"`
	InGameID string `json:"in_game_id"`
	Role     string `json:"role,omitempty"`
}

// PlayerList хранится одной JSONB-колонкой в таблице teams.
type PlayerList []Player

func (p PlayerList) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PlayerList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = nil
		return nil
	default:
		return errors.New("players: unsupported source type")
	}
}

// Team представляет одну регистрацию на турнир: команду для Duo/Squad
// либо синтетическую запись "<игрок> (Solo)" для одиночного режима.
type Team struct {
	ID               string        `json:"id" db:"id"`
	TournamentID     string        `json:"tournament_id" db:"tournament_id"`
	TeamName         string        `json:"team_name" db:"team_name"`
	LeaderName       string        `json:"leader_name" db:"leader_name"`
	LeaderEmail      string        `json:"leader_email" db:"leader_email"`
	LeaderPhone      string        `json:"leader_phone" db:"leader_phone"`
	LeaderWhatsApp   *string       `json:"leader_whatsapp,omitempty" db:"leader_whatsapp"`
	Players          PlayerList    `json:"players" db:"players"`
	PaymentStatus    PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentID        *string       `json:"payment_id,omitempty" db:"payment_id"`
	RegistrationDate time.Time     `json:"registration_date" db:"registration_date"`

	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
}
