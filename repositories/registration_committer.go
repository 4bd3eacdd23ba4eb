package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/epicesports/tournament-platform/models"
)

// RegistrationCommitter — транзакционная граница коммита регистрации: запись
// команды, условный инкремент счётчика турнира и аудит-записи игроков либо
// применяются все вместе, либо не применяются вовсе.
type RegistrationCommitter interface {
	CommitRegistration(ctx context.Context, team *models.Team, participants []*models.Participant, solo bool) error
}

type postgresRegistrationCommitter struct {
	db           *sql.DB
	teams        TeamRepository
	participants ParticipantRepository
	tournaments  TournamentRepository
}

func NewPostgresRegistrationCommitter(
	db *sql.DB,
	teams TeamRepository,
	participants ParticipantRepository,
	tournaments TournamentRepository,
) RegistrationCommitter {
	return &postgresRegistrationCommitter{
		db:           db,
		teams:        teams,
		participants: participants,
		tournaments:  tournaments,
	}
}

func (c *postgresRegistrationCommitter) CommitRegistration(ctx context.Context, team *models.Team, participants []*models.Participant, solo bool) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin registration transaction: %w", err)
	}
	defer tx.Rollback()

	if err := c.teams.Create(ctx, tx, team); err != nil {
		return err
	}

	// Условный инкремент — авторитетная проверка вместимости: параллельный
	// коммит, успевший забрать последний слот, приводит здесь к нулю
	// затронутых строк и откату всей транзакции.
	if err := c.tournaments.IncrementRegistered(ctx, tx, team.TournamentID, solo); err != nil {
		return err
	}

	for _, p := range participants {
		p.TeamID = team.ID
		if err := c.participants.Create(ctx, tx, p); err != nil {
			if errors.Is(err, ErrParticipantConflict) {
				return err
			}
			return fmt.Errorf("failed to persist participant %s: %w", p.ParticipantID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit registration transaction: %w", err)
	}
	return nil
}
