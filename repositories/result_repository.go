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
	ErrResultNotFound    = errors.New("result not found")
	ErrResultTeamInvalid = errors.New("result references unknown team or tournament")
)

type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Result, error)
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) Create(ctx context.Context, result *models.Result) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	query := `
		INSERT INTO results (id, tournament_id, team_id, position, kills, points, prize_won)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		result.ID, result.TournamentID, result.TeamID,
		result.Position, result.Kills, result.Points, result.PrizeWon,
	).Scan(&result.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrResultTeamInvalid
		}
		return fmt.Errorf("failed to create result: %w", err)
	}
	return nil
}

func (r *postgresResultRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Result, error) {
	query := `
		SELECT r.id, r.tournament_id, r.team_id, r.position, r.kills, r.points, r.prize_won, r.created_at,
		       t.team_name, t.leader_name
		FROM results r
		JOIN teams t ON r.team_id = t.id
		WHERE r.tournament_id = $1
		ORDER BY r.position ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	results := make([]models.Result, 0)
	for rows.Next() {
		var res models.Result
		var team models.Team
		if scanErr := rows.Scan(
			&res.ID, &res.TournamentID, &res.TeamID, &res.Position,
			&res.Kills, &res.Points, &res.PrizeWon, &res.CreatedAt,
			&team.TeamName, &team.LeaderName,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", scanErr)
		}
		team.ID = res.TeamID
		res.Team = &team
		results = append(results, res)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating result rows: %w", err)
	}
	return results, nil
}
