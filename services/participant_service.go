package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/epicesports/tournament-platform/models"
	"github.com/epicesports/tournament-platform/repositories"
	"github.com/epicesports/tournament-platform/utils"
)

// ParticipantService — поиск аудит-записей игроков по токену, турниру и статусу.
type ParticipantService struct {
	repo repositories.ParticipantRepository
}

func NewParticipantService(repo repositories.ParticipantRepository) *ParticipantService {
	return &ParticipantService{repo: repo}
}

func (s *ParticipantService) ListParticipants(ctx context.Context, filter repositories.ListParticipantsFilter) ([]*models.Participant, error) {
	// Форму токена отсекаем до похода в БД.
	if filter.ParticipantID != nil && !utils.ValidateParticipantID(*filter.ParticipantID) {
		return nil, ErrParticipantNotFound
	}

	participants, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if filter.ParticipantID != nil && len(participants) == 0 {
		return nil, ErrParticipantNotFound
	}
	return participants, nil
}

func (s *ParticipantService) ChangeParticipantStatus(ctx context.Context, participantID string, status models.ParticipantStatus) error {
	if !utils.ValidateParticipantID(participantID) {
		return ErrParticipantNotFound
	}
	if err := s.repo.UpdateStatus(ctx, participantID, status); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
