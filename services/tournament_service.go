package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/epicesports/tournament-platform/models"
	"github.com/epicesports/tournament-platform/repositories"
	"github.com/epicesports/tournament-platform/storage"
	"github.com/google/uuid"
)

// TournamentService инкапсулирует публичное чтение и админский CRUD турниров.
// Счётчики регистраций сервис не трогает — ими владеет PaymentService.
type TournamentService struct {
	repo         repositories.TournamentRepository
	uploader     storage.FileUploader
	demo         *DemoDataProvider
	fallbackMode FallbackMode
	logger       *slog.Logger
}

func NewTournamentService(
	repo repositories.TournamentRepository,
	uploader storage.FileUploader,
	demo *DemoDataProvider,
	fallbackMode FallbackMode,
	logger *slog.Logger,
) *TournamentService {
	return &TournamentService{
		repo:         repo,
		uploader:     uploader,
		demo:         demo,
		fallbackMode: fallbackMode,
		logger:       logger,
	}
}

type CreateTournamentInput struct {
	Title       string            `json:"title"`
	Game        models.Game       `json:"game"`
	Mode        string            `json:"mode"`
	Description string            `json:"description"`
	PrizePool   int64             `json:"prize_pool"`
	EntryFee    int64             `json:"entry_fee"`
	MaxTeams    int               `json:"max_teams"`
	MaxPlayers  int               `json:"max_players"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	Rules       string            `json:"rules"`
	MapType     *string           `json:"map_type"`
	Status      models.TournamentStatus `json:"status"`
}

func (in CreateTournamentInput) validate() error {
	if in.Title == "" {
		return ErrTournamentTitleRequired
	}
	if in.MaxTeams <= 0 {
		return ErrTournamentInvalidCapacity
	}
	if !in.EndDate.After(in.StartDate) {
		return ErrTournamentInvalidDateRange
	}
	return nil
}

func (s *TournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	t := &models.Tournament{
		Title:       input.Title,
		Game:        input.Game,
		Mode:        input.Mode,
		Description: input.Description,
		PrizePool:   input.PrizePool,
		EntryFee:    input.EntryFee,
		MaxTeams:    input.MaxTeams,
		MaxPlayers:  input.MaxPlayers,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Rules:       input.Rules,
		MapType:     input.MapType,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.logger.Info("tournament created", slog.String("tournament_id", t.ID), slog.String("title", t.Title))
	return t, nil
}

func (s *TournamentService) GetTournamentByID(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			if s.fallbackMode == FallbackDemo {
				if demoT, ok := s.demo.TournamentByID(id); ok {
					return demoT, nil
				}
			}
			return nil, ErrTournamentNotFound
		}
		if s.fallbackMode == FallbackDemo {
			if demoT, ok := s.demo.TournamentByID(id); ok {
				s.logger.Warn("store unavailable, serving demo tournament", slog.String("tournament_id", id), slog.Any("error", err))
				return demoT, nil
			}
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.resolveImageURL(t)
	return t, nil
}

func (s *TournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.repo.List(ctx, filter)
	if err != nil {
		if s.fallbackMode == FallbackDemo {
			s.logger.Warn("store unavailable, serving demo tournament list", slog.Any("error", err))
			return s.demo.Tournaments(), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	for i := range tournaments {
		s.resolveImageURL(&tournaments[i])
	}
	return tournaments, nil
}

type UpdateTournamentInput = CreateTournamentInput

func (s *TournamentService) UpdateTournament(ctx context.Context, id string, input UpdateTournamentInput) (*models.Tournament, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	t.Title = input.Title
	t.Game = input.Game
	t.Mode = input.Mode
	t.Description = input.Description
	t.PrizePool = input.PrizePool
	t.EntryFee = input.EntryFee
	t.MaxTeams = input.MaxTeams
	t.MaxPlayers = input.MaxPlayers
	if input.Status != "" {
		t.Status = input.Status
	}
	t.StartDate = input.StartDate
	t.EndDate = input.EndDate
	t.Rules = input.Rules
	t.MapType = input.MapType

	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.resolveImageURL(t)
	return t, nil
}

// DeleteTournament удаляет турнир, но отказывает, пока к нему привязана хотя
// бы одна регистрация.
func (s *TournamentService) DeleteTournament(ctx context.Context, id string) error {
	t, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if t.RegisteredCount() > 0 {
		return ErrTournamentHasRegistrations
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentInUse):
			return ErrTournamentHasRegistrations
		default:
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	s.logger.Info("tournament deleted", slog.String("tournament_id", id))
	return nil
}

// UploadBanner загружает баннер турнира в объектное хранилище и сохраняет ключ.
func (s *TournamentService) UploadBanner(ctx context.Context, id, contentType string, r io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrUploaderUnavailable
	}

	t, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	key := fmt.Sprintf("tournaments/%s/banner-%s", t.ID, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("failed to upload tournament banner: %w", err)
	}

	oldKey := t.ImageKey
	if err := s.repo.UpdateImageKey(ctx, t.ID, &result.Key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	t.ImageKey = &result.Key

	if oldKey != nil && *oldKey != result.Key {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil {
			s.logger.Warn("failed to delete previous banner", slog.String("key", *oldKey), slog.Any("error", delErr))
		}
	}

	s.resolveImageURL(t)
	return t, nil
}

// AutoUpdateTournamentStatusesByDates запускается планировщиком и переводит
// турниры по датам: upcoming→ongoing→completed.
func (s *TournamentService) AutoUpdateTournamentStatusesByDates(ctx context.Context) error {
	affected, err := s.repo.UpdateStatusesByDates(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if affected > 0 {
		s.logger.Info("tournament statuses updated by schedule", slog.Int64("affected", affected))
	}
	return nil
}

func (s *TournamentService) resolveImageURL(t *models.Tournament) {
	if s.uploader == nil || t.ImageKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*t.ImageKey)
	if url != "" {
		t.ImageURL = &url
	}
}
