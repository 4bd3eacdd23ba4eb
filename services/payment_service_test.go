package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/epicesports/tournament-platform/models"
	"github.com/epicesports/tournament-platform/payment"
	"github.com/epicesports/tournament-platform/repositories"
)

const testPaymentSecret = "test_key_secret"

// fakeTournamentRepo — репозиторий турниров в памяти для сервисных тестов.
type fakeTournamentRepo struct {
	tournaments map[string]*models.Tournament
	failWith    error
}

func newFakeTournamentRepo(ts ...*models.Tournament) *fakeTournamentRepo {
	r := &fakeTournamentRepo{tournaments: make(map[string]*models.Tournament)}
	for _, t := range ts {
		r.tournaments[t.ID] = t
	}
	return r
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	if r.failWith != nil {
		return r.failWith
	}
	if t.ID == "" {
		t.ID = "generated-id"
	}
	if t.Status == "" {
		t.Status = models.StatusUpcoming
	}
	t.CreatedAt = time.Now()
	copied := *t
	r.tournaments[t.ID] = &copied
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Tournament, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	copied := *t
	r.tournaments[t.ID] = &copied
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id string) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

func (r *fakeTournamentRepo) UpdateImageKey(ctx context.Context, id string, imageKey *string) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.ImageKey = imageKey
	return nil
}

func (r *fakeTournamentRepo) IncrementRegistered(ctx context.Context, exec repositories.SQLExecutor, id string, solo bool) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	copied := *t
	if !CapacityGate(&copied) {
		return repositories.ErrTournamentCapacityReached
	}
	if solo {
		t.RegisteredPlayers++
	} else {
		t.RegisteredTeams++
	}
	return nil
}

func (r *fakeTournamentRepo) UpdateStatusesByDates(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// fakeCommitter повторяет транзакционную семантику настоящего коммиттера:
// сначала условный инкремент, и только при успехе — записи.
type fakeCommitter struct {
	tournaments  *fakeTournamentRepo
	teams        []*models.Team
	participants []*models.Participant
	failWith     error
}

func (c *fakeCommitter) CommitRegistration(ctx context.Context, team *models.Team, participants []*models.Participant, solo bool) error {
	if c.failWith != nil {
		return c.failWith
	}
	if err := c.tournaments.IncrementRegistered(ctx, nil, team.TournamentID, solo); err != nil {
		return err
	}
	team.ID = "team-1"
	team.RegistrationDate = time.Now()
	for _, p := range participants {
		p.TeamID = team.ID
	}
	c.teams = append(c.teams, team)
	c.participants = append(c.participants, participants...)
	return nil
}

type fakeGateway struct {
	orders       int
	createErr    error
	lastAmount   int64
	lastCurrency string
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*payment.Order, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.orders++
	g.lastAmount = amount
	g.lastCurrency = currency
	return &payment.Order{ID: "order_test_1", Amount: amount * 100, Currency: currency, KeyID: "rzp_test"}, nil
}

func (g *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return payment.VerifyOrderSignature(testPaymentSecret, orderID, paymentID, signature)
}

func (g *fakeGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	return false
}

type fakeNotifier struct {
	rooms    []string
	messages []interface{}
}

func (n *fakeNotifier) BroadcastToRoom(roomID string, message interface{}) {
	n.rooms = append(n.rooms, roomID)
	n.messages = append(n.messages, message)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func duoTournament() *models.Tournament {
	return &models.Tournament{
		ID:              "t-duo",
		Title:           "BGMI Duo Battle",
		Game:            models.GameBGMI,
		Mode:            "Duo",
		EntryFee:        100,
		MaxTeams:        50,
		RegisteredTeams: 49,
		Status:          models.StatusUpcoming,
	}
}

func soloTournament() *models.Tournament {
	return &models.Tournament{
		ID:                "t-solo",
		Title:             "BGMI Solo Championship",
		Game:              models.GameBGMI,
		Mode:              "Solo",
		EntryFee:          50,
		MaxPlayers:        100,
		MaxTeams:          100,
		RegisteredPlayers: 10,
		Status:            models.StatusUpcoming,
	}
}

func duoRegistration() RegistrationInput {
	return RegistrationInput{
		TournamentID: "t-duo",
		TeamName:     "Soul Esports",
		LeaderName:   "Rahul",
		LeaderEmail:  "rahul@example.com",
		LeaderPhone:  "+919000000000",
		Players: []models.Player{
			{Name: "Rahul", InGameID: "511223344", Role: "IGL"},
			{Name: "Vikram", InGameID: "511223355", Role: "Fragger"},
		},
	}
}

func signedProof(orderID, paymentID string) PaymentProof {
	return PaymentProof{
		OrderID:   orderID,
		PaymentID: paymentID,
		Signature: payment.ComputeOrderSignature(testPaymentSecret, orderID, paymentID),
	}
}

func newTestPaymentService(repo *fakeTournamentRepo) (*PaymentService, *fakeCommitter, *fakeGateway, *fakeNotifier) {
	committer := &fakeCommitter{tournaments: repo}
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{}
	svc := NewPaymentService(repo, committer, gateway, notifier, testLogger())
	return svc, committer, gateway, notifier
}

func TestCreateOrder(t *testing.T) {
	repo := newFakeTournamentRepo(duoTournament())
	svc, _, gateway, _ := newTestPaymentService(repo)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		TournamentID: "t-duo",
		TeamName:     "Soul Esports",
		LeaderEmail:  "rahul@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID == "" {
		t.Error("order ID is empty")
	}
	if gateway.lastAmount != 100 {
		t.Errorf("gateway amount = %d, want entry fee 100", gateway.lastAmount)
	}
	if gateway.lastCurrency != "INR" {
		t.Errorf("currency = %q, want INR", gateway.lastCurrency)
	}

	// Создание ордера не меняет счётчики.
	stored, _ := repo.GetByID(context.Background(), nil, "t-duo")
	if stored.RegisteredTeams != 49 {
		t.Errorf("registered_teams = %d after order creation, want 49", stored.RegisteredTeams)
	}
}

func TestCreateOrderTournamentFull(t *testing.T) {
	full := duoTournament()
	full.RegisteredTeams = 50
	repo := newFakeTournamentRepo(full)
	svc, _, gateway, _ := newTestPaymentService(repo)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{TournamentID: "t-duo"})
	if !errors.Is(err, ErrTournamentFull) {
		t.Fatalf("err = %v, want ErrTournamentFull", err)
	}
	if gateway.orders != 0 {
		t.Error("gateway order created for a full tournament")
	}
}

func TestCreateOrderRegistrationClosed(t *testing.T) {
	done := duoTournament()
	done.Status = models.StatusCompleted
	repo := newFakeTournamentRepo(done)
	svc, _, _, _ := newTestPaymentService(repo)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{TournamentID: "t-duo"})
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("err = %v, want ErrRegistrationClosed", err)
	}
}

func TestCreateOrderTournamentNotFound(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc, _, _, _ := newTestPaymentService(repo)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{TournamentID: "missing"})
	if !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("err = %v, want ErrTournamentNotFound", err)
	}
}

func TestVerifyAndCommitDuo(t *testing.T) {
	repo := newFakeTournamentRepo(duoTournament())
	svc, committer, _, notifier := newTestPaymentService(repo)

	team, err := svc.VerifyAndCommit(context.Background(), signedProof("order_1", "pay_1"), duoRegistration())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if team.PaymentStatus != models.PaymentCompleted {
		t.Errorf("payment status = %q, want completed", team.PaymentStatus)
	}
	if team.PaymentID == nil || *team.PaymentID != "pay_1" {
		t.Error("payment ID not recorded on registration")
	}
	if team.TeamName != "Soul Esports" || team.LeaderName != "Rahul" {
		t.Errorf("team identity = %q/%q, want provided values", team.TeamName, team.LeaderName)
	}

	stored, _ := repo.GetByID(context.Background(), nil, "t-duo")
	if stored.RegisteredTeams != 50 {
		t.Errorf("registered_teams = %d, want 50", stored.RegisteredTeams)
	}

	// По одной аудит-записи на игрока, лидер помечен.
	if len(committer.participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(committer.participants))
	}
	if !committer.participants[0].TeamLeader || committer.participants[1].TeamLeader {
		t.Error("only the first player must be flagged as team leader")
	}
	for _, p := range committer.participants {
		if p.Status != models.ParticipantJoined {
			t.Errorf("participant status = %q, want JOINED", p.Status)
		}
		if !strings.HasPrefix(p.ParticipantID, "BGMIP-") {
			t.Errorf("participant token %q lacks platform prefix", p.ParticipantID)
		}
	}

	if len(notifier.rooms) != 1 || notifier.rooms[0] != "t-duo" {
		t.Errorf("slots update rooms = %v, want [t-duo]", notifier.rooms)
	}
}

func TestVerifyAndCommitSoloSynthesizesTeam(t *testing.T) {
	repo := newFakeTournamentRepo(soloTournament())
	svc, committer, _, _ := newTestPaymentService(repo)

	input := RegistrationInput{
		TournamentID: "t-solo",
		LeaderEmail:  "rahul@example.com",
		LeaderPhone:  "+919000000000",
		Players:      []models.Player{{Name: "Rahul", InGameID: "511223344"}},
	}

	team, err := svc.VerifyAndCommit(context.Background(), signedProof("order_2", "pay_2"), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if team.TeamName != "Rahul (Solo)" {
		t.Errorf("team name = %q, want %q", team.TeamName, "Rahul (Solo)")
	}
	if team.LeaderName != "Rahul" {
		t.Errorf("leader name = %q, want %q", team.LeaderName, "Rahul")
	}

	stored, _ := repo.GetByID(context.Background(), nil, "t-solo")
	if stored.RegisteredPlayers != 11 {
		t.Errorf("registered_players = %d, want 11", stored.RegisteredPlayers)
	}
	if stored.RegisteredTeams != 0 {
		t.Errorf("registered_teams = %d, want untouched 0", stored.RegisteredTeams)
	}
	if len(committer.participants) != 1 {
		t.Errorf("participants = %d, want 1", len(committer.participants))
	}
}

func TestVerifyAndCommitInvalidSignature(t *testing.T) {
	repo := newFakeTournamentRepo(duoTournament())
	svc, committer, _, notifier := newTestPaymentService(repo)

	proof := PaymentProof{OrderID: "order_1", PaymentID: "pay_1", Signature: "forged"}
	_, err := svc.VerifyAndCommit(context.Background(), proof, duoRegistration())
	if !errors.Is(err, ErrInvalidPaymentSignature) {
		t.Fatalf("err = %v, want ErrInvalidPaymentSignature", err)
	}

	if len(committer.teams) != 0 {
		t.Error("registration persisted despite invalid signature")
	}
	stored, _ := repo.GetByID(context.Background(), nil, "t-duo")
	if stored.RegisteredTeams != 49 {
		t.Error("counter mutated despite invalid signature")
	}
	if len(notifier.rooms) != 0 {
		t.Error("slots update broadcast despite invalid signature")
	}
}

func TestVerifyAndCommitFullAtCommit(t *testing.T) {
	full := duoTournament()
	full.RegisteredTeams = 50
	repo := newFakeTournamentRepo(full)
	svc, committer, _, _ := newTestPaymentService(repo)

	_, err := svc.VerifyAndCommit(context.Background(), signedProof("order_1", "pay_1"), duoRegistration())
	if !errors.Is(err, ErrTournamentFull) {
		t.Fatalf("err = %v, want ErrTournamentFull", err)
	}
	if len(committer.teams) != 0 {
		t.Error("registration persisted for a full tournament")
	}
}

func TestVerifyAndCommitMissingTeamFields(t *testing.T) {
	repo := newFakeTournamentRepo(duoTournament())
	svc, _, _, _ := newTestPaymentService(repo)

	input := duoRegistration()
	input.TeamName = ""

	_, err := svc.VerifyAndCommit(context.Background(), signedProof("order_1", "pay_1"), input)
	if !errors.Is(err, ErrMissingRequiredFields) {
		t.Fatalf("err = %v, want ErrMissingRequiredFields", err)
	}
}

func TestVerifyAndCommitNoPlayers(t *testing.T) {
	repo := newFakeTournamentRepo(duoTournament())
	svc, _, _, _ := newTestPaymentService(repo)

	input := duoRegistration()
	input.Players = nil

	_, err := svc.VerifyAndCommit(context.Background(), signedProof("order_1", "pay_1"), input)
	if !errors.Is(err, ErrNoPlayers) {
		t.Fatalf("err = %v, want ErrNoPlayers", err)
	}
}

func TestVerifyAndCommitPartialFailure(t *testing.T) {
	repo := newFakeTournamentRepo(duoTournament())
	committer := &fakeCommitter{tournaments: repo, failWith: errors.New("connection reset")}
	svc := NewPaymentService(repo, committer, &fakeGateway{}, nil, testLogger())

	_, err := svc.VerifyAndCommit(context.Background(), signedProof("order_1", "pay_1"), duoRegistration())
	if !errors.Is(err, ErrRegistrationNotRecorded) {
		t.Fatalf("err = %v, want ErrRegistrationNotRecorded", err)
	}
}
