package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/epicesports/tournament-platform/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound          = errors.New("registration not found")
	ErrTeamTournamentInvalid = errors.New("registration references unknown tournament")
)

type ListTeamsFilter struct {
	TournamentID *string
}

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	List(ctx context.Context, filter ListTeamsFilter) ([]models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	executor := r.getExecutor(exec)
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	query := `
		INSERT INTO teams (
			id, tournament_id, team_name, leader_name, leader_email,
			leader_phone, leader_whatsapp, players, payment_status, payment_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING registration_date`

	err := executor.QueryRowContext(ctx, query,
		team.ID, team.TournamentID, team.TeamName, team.LeaderName, team.LeaderEmail,
		team.LeaderPhone, team.LeaderWhatsApp, team.Players, team.PaymentStatus, team.PaymentID,
	).Scan(&team.RegistrationDate)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTeamTournamentInvalid
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `
		SELECT id, tournament_id, team_name, leader_name, leader_email,
		       leader_phone, leader_whatsapp, players, payment_status, payment_id, registration_date
		FROM teams
		WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.TournamentID, &team.TeamName, &team.LeaderName, &team.LeaderEmail,
		&team.LeaderPhone, &team.LeaderWhatsApp, &team.Players, &team.PaymentStatus,
		&team.PaymentID, &team.RegistrationDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get registration %s: %w", id, err)
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, filter ListTeamsFilter) ([]models.Team, error) {
	query := `
		SELECT t.id, t.tournament_id, t.team_name, t.leader_name, t.leader_email,
		       t.leader_phone, t.leader_whatsapp, t.players, t.payment_status, t.payment_id, t.registration_date,
		       tr.title, tr.mode
		FROM teams t
		JOIN tournaments tr ON t.tournament_id = tr.id`

	args := []interface{}{}
	if filter.TournamentID != nil {
		query += " WHERE t.tournament_id = $1"
		args = append(args, *filter.TournamentID)
	}
	query += " ORDER BY t.registration_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		var tournament models.Tournament
		if scanErr := rows.Scan(
			&team.ID, &team.TournamentID, &team.TeamName, &team.LeaderName, &team.LeaderEmail,
			&team.LeaderPhone, &team.LeaderWhatsApp, &team.Players, &team.PaymentStatus,
			&team.PaymentID, &team.RegistrationDate,
			&tournament.Title, &tournament.Mode,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", scanErr)
		}
		tournament.ID = team.TournamentID
		team.Tournament = &tournament
		teams = append(teams, team)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return teams, nil
}
