package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/epicesports/tournament-platform/models"
	"github.com/epicesports/tournament-platform/payment"
	"github.com/epicesports/tournament-platform/repositories"
	"github.com/epicesports/tournament-platform/utils"
	"github.com/google/uuid"
)

// SlotsNotifier рассылает live-обновления счётчиков слотов подписчикам
// страницы турнира.
type SlotsNotifier interface {
	BroadcastToRoom(roomID string, message interface{})
}

// PaymentService реализует двухфазный поток регистрации: создание платёжного
// ордера (оптимистичная проверка вместимости) и verify-and-commit
// (проверка подписи, повторная проверка вместимости, транзакционный коммит).
type PaymentService struct {
	tournaments repositories.TournamentRepository
	committer   repositories.RegistrationCommitter
	gateway     payment.Gateway
	notifier    SlotsNotifier
	logger      *slog.Logger
}

func NewPaymentService(
	tournaments repositories.TournamentRepository,
	committer repositories.RegistrationCommitter,
	gateway payment.Gateway,
	notifier SlotsNotifier,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		tournaments: tournaments,
		committer:   committer,
		gateway:     gateway,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateOrderInput — лёгкая сводка о регистранте; используется только для
// метаданных платёжного ордера, не для учёта вместимости.
type CreateOrderInput struct {
	TournamentID string `json:"tournament_id"`
	TeamName     string `json:"team_name"`
	LeaderEmail  string `json:"leader_email"`
}

// PaymentProof — подтверждение оплаты из client-redirect потока шлюза.
type PaymentProof struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// RegistrationInput — сырой payload регистрации с клиента. Разрешается в
// одну из двух форм (solo либо team) ровно один раз, до коммита.
type RegistrationInput struct {
	TournamentID   string            `json:"tournament_id"`
	TeamName       string            `json:"team_name"`
	LeaderName     string            `json:"leader_name"`
	LeaderEmail    string            `json:"leader_email"`
	LeaderPhone    string            `json:"leader_phone"`
	LeaderWhatsApp *string           `json:"leader_whatsapp,omitempty"`
	Players        []models.Player   `json:"players"`
}

// registrant — нормализованный регистрант после разрешения solo/team формы.
type registrant struct {
	teamName   string
	leaderName string
}

// resolveRegistrant разрешает solo/team вариант payload-а. Solo-регистрант не
// имеет самостоятельной командной идентичности: имя команды и лидера
// синтезируются из первого игрока.
func resolveRegistrant(solo bool, in RegistrationInput) (registrant, error) {
	if len(in.Players) == 0 {
		return registrant{}, ErrNoPlayers
	}
	if solo {
		name := in.Players[0].Name
		if name == "" {
			return registrant{}, ErrNoPlayers
		}
		return registrant{
			teamName:   fmt.Sprintf("%s (Solo)", name),
			leaderName: name,
		}, nil
	}
	if in.TeamName == "" || in.LeaderName == "" {
		return registrant{}, ErrMissingRequiredFields
	}
	return registrant{teamName: in.TeamName, leaderName: in.LeaderName}, nil
}

// CreateOrder создаёт платёжный ордер во внешнем шлюзе, предварительно
// отказывая быстро, если турнир уже заполнен. Состояние турнира не меняется.
func (s *PaymentService) CreateOrder(ctx context.Context, input CreateOrderInput) (*payment.Order, error) {
	t, err := s.resolveTournament(ctx, input.TournamentID)
	if err != nil {
		return nil, err
	}

	if t.Status == models.StatusCompleted || t.Status == models.StatusCancelled {
		return nil, ErrRegistrationClosed
	}
	if !CapacityGate(t) {
		return nil, ErrTournamentFull
	}

	receipt := fmt.Sprintf("reg_%s", uuid.NewString())
	notes := map[string]string{
		"tournament_id": t.ID,
		"tournament":    t.Title,
		"team_name":     input.TeamName,
		"leader_email":  input.LeaderEmail,
	}

	order, err := s.gateway.CreateOrder(ctx, t.EntryFee, "INR", receipt, notes)
	if err != nil {
		s.logger.Error("payment order creation failed",
			slog.String("tournament_id", t.ID),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}

	s.logger.Info("payment order created",
		slog.String("tournament_id", t.ID),
		slog.String("order_id", order.ID),
		slog.Int64("amount", order.Amount))
	return order, nil
}

// VerifyAndCommit — единственный настоящий конечный автомат системы:
// RECEIVED → SIGNATURE_VALID → TOURNAMENT_RESOLVED → CAPACITY_OK → COMMITTED.
// Любой отказ обрывает поток без единой записи; частичные состояния снаружи
// не наблюдаемы.
func (s *PaymentService) VerifyAndCommit(ctx context.Context, proof PaymentProof, input RegistrationInput) (*models.Team, error) {
	if !s.gateway.VerifyPaymentSignature(proof.OrderID, proof.PaymentID, proof.Signature) {
		s.logger.Warn("payment signature verification failed",
			slog.String("order_id", proof.OrderID),
			slog.String("payment_id", proof.PaymentID))
		return nil, ErrInvalidPaymentSignature
	}

	t, err := s.resolveTournament(ctx, input.TournamentID)
	if err != nil {
		return nil, err
	}

	// Авторитетная проверка по текущим счётчикам, не по снимку на момент
	// создания ордера: слоты между этими точками не резервируются.
	if !CapacityGate(t) {
		return nil, ErrTournamentFull
	}

	solo := t.IsSoloMode()
	reg, err := resolveRegistrant(solo, input)
	if err != nil {
		return nil, err
	}

	paymentID := proof.PaymentID
	team := &models.Team{
		TournamentID:   t.ID,
		TeamName:       reg.teamName,
		LeaderName:     reg.leaderName,
		LeaderEmail:    input.LeaderEmail,
		LeaderPhone:    input.LeaderPhone,
		LeaderWhatsApp: input.LeaderWhatsApp,
		Players:        input.Players,
		PaymentStatus:  models.PaymentCompleted,
		PaymentID:      &paymentID,
	}

	participants := make([]*models.Participant, 0, len(input.Players))
	for i, player := range input.Players {
		participants = append(participants, &models.Participant{
			TournamentID:  t.ID,
			ParticipantID: utils.GenerateParticipantID(t.ID, input.LeaderEmail, reg.teamName),
			Name:          player.Name,
			Email:         input.LeaderEmail,
			InGameID:      player.InGameID,
			Role:          player.Role,
			Status:        models.ParticipantJoined,
			TeamLeader:    i == 0,
			PaymentID:     &paymentID,
		})
	}

	if err := s.committer.CommitRegistration(ctx, team, participants, solo); err != nil {
		if errors.Is(err, repositories.ErrTournamentCapacityReached) {
			return nil, ErrTournamentFull
		}
		// Платёж уже подтверждён, а коммит не прошёл: единственный сценарий,
		// требующий ручной сверки. Логируем и отдаём наружу, не выдумывая успех.
		s.logger.Error("PARTIAL_FAILURE: payment confirmed, registration not recorded",
			slog.String("tournament_id", t.ID),
			slog.String("payment_id", proof.PaymentID),
			slog.String("order_id", proof.OrderID),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrRegistrationNotRecorded, err)
	}

	s.logger.Info("registration committed",
		slog.String("tournament_id", t.ID),
		slog.String("team_id", team.ID),
		slog.String("payment_id", proof.PaymentID),
		slog.Bool("solo", solo),
		slog.Int("players", len(input.Players)))

	s.broadcastSlots(t, solo)
	return team, nil
}

// HandleWebhook проверяет подпись асинхронной webhook-доставки шлюза и
// фиксирует событие для сверки. Коммит регистраций идёт только через
// client-redirect поток.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !s.gateway.VerifyWebhookSignature(body, signature) {
		return ErrInvalidPaymentSignature
	}
	s.logger.Info("payment webhook received", slog.Int("payload_bytes", len(body)))
	return nil
}

func (s *PaymentService) resolveTournament(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.tournaments.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return t, nil
}

type slotsUpdate struct {
	Type              string `json:"type"`
	TournamentID      string `json:"tournament_id"`
	RegisteredTeams   int    `json:"registered_teams"`
	RegisteredPlayers int    `json:"registered_players"`
	MaxCapacity       int    `json:"max_capacity"`
}

func (s *PaymentService) broadcastSlots(t *models.Tournament, solo bool) {
	if s.notifier == nil {
		return
	}
	update := slotsUpdate{
		Type:              "SLOTS_UPDATED",
		TournamentID:      t.ID,
		RegisteredTeams:   t.RegisteredTeams,
		RegisteredPlayers: t.RegisteredPlayers,
		MaxCapacity:       t.MaxCapacity(),
	}
	if solo {
		update.RegisteredPlayers++
	} else {
		update.RegisteredTeams++
	}
	s.notifier.BroadcastToRoom(t.ID, update)
}
