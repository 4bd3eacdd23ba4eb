package services

import "github.com/epicesports/tournament-platform/models"

// CapacityGate решает, допускается ли ещё одна регистрация на турнир, по
// релевантному режиму счётчику. Без побочных эффектов. Вызывается дважды:
// оптимистично при создании платёжного ордера и авторитетно перед коммитом
// подтверждённой регистрации.
func CapacityGate(t *models.Tournament) bool {
	max := t.MaxCapacity()
	if max <= 0 {
		// Нулевой или незаданный предел трактуем как "мест нет".
		return false
	}
	return t.RegisteredCount() < max
}
