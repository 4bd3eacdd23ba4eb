package utils

import (
	"strings"
	"testing"
)

func TestGenerateParticipantID(t *testing.T) {
	tournamentID := "68dde379b53864f33bb8dd55"

	token := GenerateParticipantID(tournamentID, "leader@example.com", "Soul Esports")

	if !strings.HasPrefix(token, "BGMIP-") {
		t.Fatalf("token %q does not start with platform prefix", token)
	}
	parts := strings.Split(token, "-")
	if len(parts) != 4 {
		t.Fatalf("token %q has %d segments, want 4", token, len(parts))
	}
	if parts[1] != "DD55" && parts[1] != "dd55" {
		t.Errorf("tournament segment = %q, want last 4 chars of tournament ID", parts[1])
	}
	if len(parts[2]) != 4 {
		t.Errorf("random segment %q has length %d, want 4", parts[2], len(parts[2]))
	}
	if len(parts[3]) != 4 {
		t.Errorf("time segment %q has length %d, want 4", parts[3], len(parts[3]))
	}
	if !ValidateParticipantID(token) {
		t.Errorf("generated token %q does not pass validation", token)
	}
}

func TestGenerateParticipantIDShortTournamentID(t *testing.T) {
	token := GenerateParticipantID("a1", "x@y.z", "Team")
	if !ValidateParticipantID(token) {
		t.Fatalf("token %q from short tournament ID does not validate", token)
	}
	parts := strings.Split(token, "-")
	if parts[1] != "a1" {
		t.Errorf("tournament segment = %q, want full short ID %q", parts[1], "a1")
	}
}

func TestValidateParticipantID(t *testing.T) {
	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{"valid uppercase", "BGMIP-DD55-X7K2-4831", true},
		{"valid lowercase prefix", "bgmip-dd55-x7k2-4831", true},
		{"missing prefix", "DD55-X7K2-4831", false},
		{"wrong random length", "BGMIP-DD55-X7K-4831", false},
		{"letters in time segment", "BGMIP-DD55-X7K2-48AB", false},
		{"empty", "", false},
		{"garbage", "not-a-token", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateParticipantID(tc.token); got != tc.want {
				t.Errorf("ValidateParticipantID(%q) = %v, want %v", tc.token, got, tc.want)
			}
		})
	}
}

func TestExtractTournamentSuffix(t *testing.T) {
	suffix, err := ExtractTournamentSuffix("BGMIP-DD55-X7K2-4831")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suffix != "DD55" {
		t.Errorf("suffix = %q, want %q", suffix, "DD55")
	}

	if _, err := ExtractTournamentSuffix("nodashes"); err == nil {
		t.Error("expected error for token without segments")
	}
}
