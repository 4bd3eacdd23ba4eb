package utils

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// participantIDPrefix — фиксированный тег платформы в идентификаторах игроков.
const participantIDPrefix = "BGMIP"

const idCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var participantIDPattern = regexp.MustCompile(`^(?i)BGMIP-[A-Z0-9]{1,8}-[A-Z0-9]{4}-[0-9]{4}$`)

// GenerateParticipantID строит человекочитаемый идентификатор игрока вида
// BGMIP-<последние 4 символа ID турнира>-<RAND4>-<последние 4 цифры epoch millis>.
// Идентификатор не является криптографически уникальным: при большом объёме
// регистраций коллизии возможны, уникальность добивает UNIQUE-констрейнт в БД.
func GenerateParticipantID(tournamentID, leaderEmail, teamName string) string {
	_ = leaderEmail // зарезервировано для будущих форматов токена
	_ = teamName

	suffix := tournamentID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}

	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	timePart := millis[len(millis)-4:]

	return fmt.Sprintf("%s-%s-%s-%s", participantIDPrefix, suffix, randomIDPart(4), timePart)
}

// ValidateParticipantID проверяет форму токена без обращения к БД.
func ValidateParticipantID(token string) bool {
	return participantIDPattern.MatchString(token)
}

// ExtractTournamentSuffix достаёт турнирную часть из токена.
func ExtractTournamentSuffix(token string) (string, error) {
	parts := strings.Split(token, "-")
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid participant token format: %q", token)
	}
	return parts[1], nil
}

func randomIDPart(length int) string {
	b := make([]byte, length)
	randomBytes := make([]byte, length)
	if _, err := rand.Read(randomBytes); err != nil {
		for i := range b {
			b[i] = idCharset[int(time.Now().UnixNano())%len(idCharset)]
		}
		return string(b)
	}
	for i, rb := range randomBytes {
		b[i] = idCharset[int(rb)%len(idCharset)]
	}
	return string(b)
}
