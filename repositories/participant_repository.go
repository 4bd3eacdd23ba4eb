package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/epicesports/tournament-platform/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantConflict = errors.New("participant id already exists")
)

type ListParticipantsFilter struct {
	TournamentID  *string
	ParticipantID *string
	Status        *models.ParticipantStatus
}

type ParticipantRepository interface {
	Create(ctx context.Context, exec SQLExecutor, p *models.Participant) error
	List(ctx context.Context, filter ListParticipantsFilter) ([]*models.Participant, error)
	UpdateStatus(ctx context.Context, participantID string, status models.ParticipantStatus) error
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresParticipantRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Participant) error {
	executor := r.getExecutor(exec)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	query := `
		INSERT INTO participants (
			id, tournament_id, team_id, participant_id, name, email,
			in_game_id, role, status, team_leader, payment_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING joined_at`

	err := executor.QueryRowContext(ctx, query,
		p.ID, p.TournamentID, p.TeamID, p.ParticipantID, p.Name, p.Email,
		p.InGameID, p.Role, p.Status, p.TeamLeader, p.PaymentID,
	).Scan(&p.JoinedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrParticipantConflict
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) List(ctx context.Context, filter ListParticipantsFilter) ([]*models.Participant, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT p.id, p.tournament_id, p.team_id, p.participant_id, p.name, p.email,
		       p.in_game_id, p.role, p.status, p.team_leader, p.joined_at, p.payment_id,
		       tr.title, tr.mode, t.team_name, t.leader_name
		FROM participants p
		JOIN tournaments tr ON p.tournament_id = tr.id
		JOIN teams t ON p.team_id = t.id
		WHERE 1=1`)

	args := []interface{}{}
	argID := 1

	if filter.TournamentID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.tournament_id = $%d", argID))
		args = append(args, *filter.TournamentID)
		argID++
	}
	if filter.ParticipantID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.participant_id = $%d", argID))
		args = append(args, *filter.ParticipantID)
		argID++
	}
	if filter.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	queryBuilder.WriteString(" ORDER BY p.joined_at DESC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	participants := make([]*models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		var tournament models.Tournament
		var team models.Team
		if scanErr := rows.Scan(
			&p.ID, &p.TournamentID, &p.TeamID, &p.ParticipantID, &p.Name, &p.Email,
			&p.InGameID, &p.Role, &p.Status, &p.TeamLeader, &p.JoinedAt, &p.PaymentID,
			&tournament.Title, &tournament.Mode, &team.TeamName, &team.LeaderName,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", scanErr)
		}
		tournament.ID = p.TournamentID
		team.ID = p.TeamID
		p.Tournament = &tournament
		p.Team = &team
		participants = append(participants, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}
	return participants, nil
}

func (r *postgresParticipantRepository) UpdateStatus(ctx context.Context, participantID string, status models.ParticipantStatus) error {
	query := `UPDATE participants SET status = $1 WHERE participant_id = $2`
	result, err := r.db.ExecContext(ctx, query, status, participantID)
	if err != nil {
		return fmt.Errorf("failed to update participant status: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}
