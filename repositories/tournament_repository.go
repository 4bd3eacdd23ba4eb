package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/epicesports/tournament-platform/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentInUse    = errors.New("tournament is in use (registrations exist)")
	// ErrTournamentCapacityReached возвращается условным инкрементом, когда
	// счётчик уже упёрся в предел — единственный источник истины о занятости
	// слотов в момент коммита.
	ErrTournamentCapacityReached = errors.New("tournament capacity reached")
)

type ListTournamentsFilter struct {
	Game   *models.Game
	Status *models.TournamentStatus
	Limit  int
	Offset int
}

type TournamentRepository interface {
	Create(ctx context.Context, t *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, t *models.Tournament) error
	Delete(ctx context.Context, id string) error
	UpdateImageKey(ctx context.Context, id string, imageKey *string) error
	// IncrementRegistered атомарно увеличивает релевантный режиму счётчик
	// регистраций на единицу, но только пока он ниже предела. Ноль затронутых
	// строк означает, что турнир заполнен.
	IncrementRegistered(ctx context.Context, exec SQLExecutor, id string, solo bool) error
	// UpdateStatusesByDates переводит upcoming→ongoing и ongoing→completed по
	// датам начала/окончания. Возвращает количество затронутых турниров.
	UpdateStatusesByDates(ctx context.Context, now time.Time) (int64, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `
	id, title, game, mode, description, prize_pool, entry_fee,
	max_teams, max_players, registered_teams, registered_players,
	status, start_date, end_date, rules, map_type, image_key, created_at`

func scanTournament(row interface{ Scan(dest ...interface{}) error }, t *models.Tournament) error {
	return row.Scan(
		&t.ID, &t.Title, &t.Game, &t.Mode, &t.Description, &t.PrizePool, &t.EntryFee,
		&t.MaxTeams, &t.MaxPlayers, &t.RegisteredTeams, &t.RegisteredPlayers,
		&t.Status, &t.StartDate, &t.EndDate, &t.Rules, &t.MapType, &t.ImageKey, &t.CreatedAt,
	)
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = models.StatusUpcoming
	}
	query := `
		INSERT INTO tournaments (
			id, title, game, mode, description, prize_pool, entry_fee,
			max_teams, max_players, status, start_date, end_date, rules, map_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING registered_teams, registered_players, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.Title, t.Game, t.Mode, t.Description, t.PrizePool, t.EntryFee,
		t.MaxTeams, t.MaxPlayers, t.Status, t.StartDate, t.EndDate, t.Rules, t.MapType,
	).Scan(&t.RegisteredTeams, &t.RegisteredPlayers, &t.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	err := scanTournament(executor.QueryRowContext(ctx, query, id), t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.Game != nil {
		query += fmt.Sprintf(" AND game = $%d", argID)
		args = append(args, *filter.Game)
		argID++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := scanTournament(rows, &t); scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	// Счётчики регистраций намеренно не трогаем: ими владеет только поток
	// подтверждения оплаты.
	query := `
		UPDATE tournaments SET
			title = $1,
			game = $2,
			mode = $3,
			description = $4,
			prize_pool = $5,
			entry_fee = $6,
			max_teams = $7,
			max_players = $8,
			status = $9,
			start_date = $10,
			end_date = $11,
			rules = $12,
			map_type = $13
		WHERE id = $14`

	result, err := r.db.ExecContext(ctx, query,
		t.Title, t.Game, t.Mode, t.Description, t.PrizePool, t.EntryFee,
		t.MaxTeams, t.MaxPlayers, t.Status, t.StartDate, t.EndDate, t.Rules, t.MapType,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tournament %s: %w", t.ID, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tournaments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTournamentInUse
		}
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateImageKey(ctx context.Context, id string, imageKey *string) error {
	query := `UPDATE tournaments SET image_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, imageKey, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament image key: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) IncrementRegistered(ctx context.Context, exec SQLExecutor, id string, solo bool) error {
	executor := r.getExecutor(exec)

	var query string
	if solo {
		// Для Solo предел — max_players с откатом на max_teams, если не задан.
		query = `
			UPDATE tournaments
			SET registered_players = registered_players + 1
			WHERE id = $1
			  AND registered_players < CASE WHEN max_players > 0 THEN max_players ELSE max_teams END`
	} else {
		query = `
			UPDATE tournaments
			SET registered_teams = registered_teams + 1
			WHERE id = $1 AND registered_teams < max_teams`
	}

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment registration counter for tournament %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentCapacityReached)
}

func (r *postgresTournamentRepository) UpdateStatusesByDates(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE tournaments SET status = CASE
			WHEN status = $1 AND end_date <= $3 THEN $4
			WHEN status = $2 AND end_date <= $3 THEN $4
			WHEN status = $2 AND start_date <= $3 THEN $1
			ELSE status
		END
		WHERE status IN ($1, $2) AND (start_date <= $3 OR end_date <= $3)`

	result, err := r.db.ExecContext(ctx, query,
		models.StatusOngoing, models.StatusUpcoming, now, models.StatusCompleted,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to auto-update tournament statuses: %w", err)
	}
	return result.RowsAffected()
}
