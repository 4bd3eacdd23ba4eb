package services

import (
	"testing"

	"github.com/epicesports/tournament-platform/models"
)

func TestCapacityGate(t *testing.T) {
	cases := []struct {
		name string
		t    models.Tournament
		want bool
	}{
		{
			name: "solo with free player slots",
			t:    models.Tournament{Mode: "Solo", MaxPlayers: 2, MaxTeams: 100, RegisteredPlayers: 1},
			want: true,
		},
		{
			name: "solo at player limit",
			t:    models.Tournament{Mode: "Solo", MaxPlayers: 2, MaxTeams: 100, RegisteredPlayers: 2},
			want: false,
		},
		{
			name: "solo without max_players falls back to max_teams",
			t:    models.Tournament{Mode: "Solo", MaxPlayers: 0, MaxTeams: 10, RegisteredPlayers: 9},
			want: true,
		},
		{
			name: "solo fallback limit reached",
			t:    models.Tournament{Mode: "Solo", MaxPlayers: 0, MaxTeams: 10, RegisteredPlayers: 10},
			want: false,
		},
		{
			name: "duo below team limit",
			t:    models.Tournament{Mode: "Duo", MaxTeams: 50, RegisteredTeams: 49},
			want: true,
		},
		{
			name: "duo at team limit",
			t:    models.Tournament{Mode: "Duo", MaxTeams: 50, RegisteredTeams: 50},
			want: false,
		},
		{
			name: "squad team counter ignores player counter",
			t:    models.Tournament{Mode: "Squad", MaxTeams: 25, RegisteredTeams: 10, RegisteredPlayers: 40},
			want: true,
		},
		{
			name: "zero capacity admits nobody",
			t:    models.Tournament{Mode: "Squad", MaxTeams: 0},
			want: false,
		},
		{
			name: "mode is case insensitive",
			t:    models.Tournament{Mode: "sOlO", MaxPlayers: 5, MaxTeams: 1, RegisteredPlayers: 3},
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tournament := tc.t
			if got := CapacityGate(&tournament); got != tc.want {
				t.Errorf("CapacityGate() = %v, want %v", got, tc.want)
			}
		})
	}
}
