package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/epicesports/tournament-platform/models"
	"github.com/epicesports/tournament-platform/repositories"
)

func newTestTournamentService(repo *fakeTournamentRepo, mode FallbackMode) *TournamentService {
	demo := NewDemoDataProvider(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	return NewTournamentService(repo, nil, demo, mode, testLogger())
}

func TestCreateTournamentValidation(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := newTestTournamentService(repo, FallbackStrict)

	base := CreateTournamentInput{
		Title:     "BGMI Squad Showdown",
		Game:      models.GameBGMI,
		Mode:      "Squad",
		MaxTeams:  25,
		StartDate: time.Now().Add(24 * time.Hour),
		EndDate:   time.Now().Add(26 * time.Hour),
	}

	cases := []struct {
		name    string
		mutate  func(*CreateTournamentInput)
		wantErr error
	}{
		{"missing title", func(in *CreateTournamentInput) { in.Title = "" }, ErrTournamentTitleRequired},
		{"zero capacity", func(in *CreateTournamentInput) { in.MaxTeams = 0 }, ErrTournamentInvalidCapacity},
		{"end before start", func(in *CreateTournamentInput) { in.EndDate = in.StartDate.Add(-time.Hour) }, ErrTournamentInvalidDateRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := base
			tc.mutate(&input)
			if _, err := svc.CreateTournament(context.Background(), input); !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}

	created, err := svc.CreateTournament(context.Background(), base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("created tournament has no ID")
	}
	if created.Status != models.StatusUpcoming {
		t.Errorf("default status = %q, want upcoming", created.Status)
	}
}

func TestDeleteTournamentGuard(t *testing.T) {
	withRegs := duoTournament() // 49 зарегистрированных команд
	empty := &models.Tournament{ID: "t-empty", Title: "Empty", Mode: "Squad", MaxTeams: 10}
	soloWithPlayers := soloTournament() // 10 зарегистрированных игроков

	repo := newFakeTournamentRepo(withRegs, empty, soloWithPlayers)
	svc := newTestTournamentService(repo, FallbackStrict)

	if err := svc.DeleteTournament(context.Background(), "t-duo"); !errors.Is(err, ErrTournamentHasRegistrations) {
		t.Errorf("deleting tournament with team registrations: err = %v, want ErrTournamentHasRegistrations", err)
	}
	if err := svc.DeleteTournament(context.Background(), "t-solo"); !errors.Is(err, ErrTournamentHasRegistrations) {
		t.Errorf("deleting solo tournament with registered players: err = %v, want ErrTournamentHasRegistrations", err)
	}
	if err := svc.DeleteTournament(context.Background(), "t-empty"); err != nil {
		t.Errorf("deleting empty tournament: unexpected error %v", err)
	}
	if err := svc.DeleteTournament(context.Background(), "t-empty"); !errors.Is(err, ErrTournamentNotFound) {
		t.Errorf("deleting twice: err = %v, want ErrTournamentNotFound", err)
	}
}

func TestListTournamentsDemoFallback(t *testing.T) {
	repo := newFakeTournamentRepo()
	repo.failWith = errors.New("dial tcp: connection refused")
	svc := newTestTournamentService(repo, FallbackDemo)

	tournaments, err := svc.ListTournaments(context.Background(), repositories.ListTournamentsFilter{})
	if err != nil {
		t.Fatalf("demo fallback returned error: %v", err)
	}
	if len(tournaments) != 2 {
		t.Fatalf("demo tournaments = %d, want 2", len(tournaments))
	}
	if tournaments[0].ID != "demo-1" && tournaments[1].ID != "demo-1" {
		t.Error("demo set does not contain demo-1")
	}
}

func TestListTournamentsStrictMode(t *testing.T) {
	repo := newFakeTournamentRepo()
	repo.failWith = errors.New("dial tcp: connection refused")
	svc := newTestTournamentService(repo, FallbackStrict)

	if _, err := svc.ListTournaments(context.Background(), repositories.ListTournamentsFilter{}); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}

func TestGetTournamentByIDDemoFallback(t *testing.T) {
	repo := newFakeTournamentRepo()
	repo.failWith = errors.New("dial tcp: connection refused")
	svc := newTestTournamentService(repo, FallbackDemo)

	got, err := svc.GetTournamentByID(context.Background(), "demo-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "BGMI Duo Battle Royale" {
		t.Errorf("title = %q, want demo duo tournament", got.Title)
	}

	// Неизвестный ID не спасает даже демо-режим.
	if _, err := svc.GetTournamentByID(context.Background(), "no-such"); !errors.Is(err, ErrTournamentNotFound) {
		t.Errorf("err = %v, want ErrTournamentNotFound", err)
	}
}

func TestGetTournamentByIDNotFoundPrefersDemoID(t *testing.T) {
	// БД доступна, но записи нет: демо-ID всё равно обслуживается в demo-режиме.
	repo := newFakeTournamentRepo()
	svc := newTestTournamentService(repo, FallbackDemo)

	got, err := svc.GetTournamentByID(context.Background(), "demo-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "demo-1" {
		t.Errorf("ID = %q, want demo-1", got.ID)
	}
}

func TestUploadBannerWithoutUploader(t *testing.T) {
	repo := newFakeTournamentRepo(duoTournament())
	svc := newTestTournamentService(repo, FallbackStrict)

	if _, err := svc.UploadBanner(context.Background(), "t-duo", "image/png", nil); !errors.Is(err, ErrUploaderUnavailable) {
		t.Fatalf("err = %v, want ErrUploaderUnavailable", err)
	}
}
