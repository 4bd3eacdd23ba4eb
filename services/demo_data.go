package services

import (
	"time"

	"github.com/epicesports/tournament-platform/models"
)

// FallbackMode определяет поведение читающих операций при недоступной БД.
type FallbackMode string

const (
	// FallbackDemo — отдавать демо-данные вместо ошибки (режим витрины).
	FallbackDemo FallbackMode = "demo"
	// FallbackStrict — возвращать ErrStoreUnavailable вызывающему.
	FallbackStrict FallbackMode = "strict"
)

// DemoDataProvider хранит неизменяемый набор демо-турниров. Конструируется
// один раз на старте и внедряется в TournamentService — никакого глобального
// изменяемого состояния.
type DemoDataProvider struct {
	tournaments []models.Tournament
}

func NewDemoDataProvider(now time.Time) *DemoDataProvider {
	erangel := "Erangel"
	miramar := "Miramar"
	return &DemoDataProvider{
		tournaments: []models.Tournament{
			{
				ID:          "demo-1",
				Title:       "BGMI Solo Championship",
				Game:        models.GameBGMI,
				Mode:        "Solo",
				Description: "Individual tournament for BGMI players",
				PrizePool:   10000,
				EntryFee:    50,
				MaxTeams:    100,
				MaxPlayers:  100,
				Status:      models.StatusUpcoming,
				StartDate:   now.Add(2 * time.Hour),
				EndDate:     now.Add(4 * time.Hour),
				Rules:       "Standard BGMI tournament rules apply.",
				MapType:     &erangel,
				CreatedAt:   now,
			},
			{
				ID:          "demo-2",
				Title:       "BGMI Duo Battle Royale",
				Game:        models.GameBGMI,
				Mode:        "Duo",
				Description: "Team tournament for 2 players",
				PrizePool:   20000,
				EntryFee:    100,
				MaxTeams:    50,
				MaxPlayers:  100,
				Status:      models.StatusUpcoming,
				StartDate:   now.Add(4 * time.Hour),
				EndDate:     now.Add(6 * time.Hour),
				Rules:       "Standard duo rules apply.",
				MapType:     &miramar,
				CreatedAt:   now,
			},
		},
	}
}

// Tournaments возвращает копию набора, чтобы вызывающие не могли изменить
// внутреннее состояние провайдера.
func (p *DemoDataProvider) Tournaments() []models.Tournament {
	out := make([]models.Tournament, len(p.tournaments))
	copy(out, p.tournaments)
	return out
}

func (p *DemoDataProvider) TournamentByID(id string) (*models.Tournament, bool) {
	for _, t := range p.tournaments {
		if t.ID == id {
			copied := t
			return &copied, true
		}
	}
	return nil, false
}
