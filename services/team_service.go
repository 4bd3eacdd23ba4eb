package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/epicesports/tournament-platform/models"
	"github.com/epicesports/tournament-platform/repositories"
	"github.com/xuri/excelize/v2"
)

// TeamService отдаёт регистрации ("команды") для публичных списков и
// админского экспорта.
type TeamService struct {
	repo           repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
}

func NewTeamService(repo repositories.TeamRepository, tournamentRepo repositories.TournamentRepository) *TeamService {
	return &TeamService{repo: repo, tournamentRepo: tournamentRepo}
}

func (s *TeamService) ListTeams(ctx context.Context, tournamentID *string) ([]models.Team, error) {
	teams, err := s.repo.List(ctx, repositories.ListTeamsFilter{TournamentID: tournamentID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return teams, nil
}

// ExportRegistrations собирает xlsx-книгу с регистрациями турнира для
// админ-панели.
func (s *TeamService) ExportRegistrations(ctx context.Context, tournamentID string) (*excelize.File, error) {
	t, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	teams, err := s.repo.List(ctx, repositories.ListTeamsFilter{TournamentID: &tournamentID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	f := excelize.NewFile()
	sheet := "Registrations"
	f.NewSheet(sheet)
	f.DeleteSheet("Sheet1")

	headers := []string{"Team", "Leader", "Email", "Phone", "WhatsApp", "Players", "Payment Status", "Payment ID", "Registered At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, team := range teams {
		playerNames := make([]string, 0, len(team.Players))
		for _, p := range team.Players {
			playerNames = append(playerNames, fmt.Sprintf("%s (%s)", p.Name, p.InGameID))
		}
		whatsapp := ""
		if team.LeaderWhatsApp != nil {
			whatsapp = *team.LeaderWhatsApp
		}
		paymentID := ""
		if team.PaymentID != nil {
			paymentID = *team.PaymentID
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), team.TeamName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), team.LeaderName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), team.LeaderEmail)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), team.LeaderPhone)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), whatsapp)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), strings.Join(playerNames, ", "))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), string(team.PaymentStatus))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), paymentID)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), team.RegistrationDate.Format("2006-01-02 15:04:05"))
		row++
	}

	f.SetColWidth(sheet, "A", "B", 22)
	f.SetColWidth(sheet, "C", "C", 30)
	f.SetColWidth(sheet, "F", "F", 45)

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row+1), fmt.Sprintf("Tournament: %s (%s)", t.Title, t.Mode))
	return f, nil
}
