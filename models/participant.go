package models

import "time"

// ParticipantStatus — статусы аудит-записи игрока.
type ParticipantStatus string

const (
	ParticipantRegistered ParticipantStatus = "REGISTERED"
	ParticipantJoined     ParticipantStatus = "JOINED"
	ParticipantDropped    ParticipantStatus = "DROPPED"
	ParticipantBanned     ParticipantStatus = "BANNED"
)

// Participant — аудит-запись отдельного игрока, создаётся на каждого игрока
// регистрации в момент подтверждения оплаты.
type Participant struct {
	ID            string            `json:"id" db:"id"`
	TournamentID  string            `json:"tournament_id" db:"tournament_id"`
	TeamID        string            `json:"team_id" db:"team_id"`
	ParticipantID string            `json:"participant_id" db:"participant_id"`
	Name          string            `json:"name" db:"name"`
	Email         string            `json:"email" db:"email"`
	InGameID      string            `json:"in_game_id" db:"in_game_id"`
	Role          string            `json:"role" db:"role"`
	Status        ParticipantStatus `json:"status" db:"status"`
	TeamLeader    bool              `json:"team_leader" db:"team_leader"`
	JoinedAt      time.Time         `json:"joined_at" db:"joined_at"`
	PaymentID     *string           `json:"payment_id,omitempty" db:"payment_id"`

	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
	Team       *Team       `json:"team,omitempty" db:"-"`
}
