package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурсы
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrTeamNotFound        = errors.New("registration not found")
	ErrParticipantNotFound = errors.New("participant not found")

	// Вместимость и валидация
	ErrTournamentFull        = errors.New("tournament is full")
	ErrMissingRequiredFields = errors.New("team name and leader name are required for team registration")
	ErrNoPlayers             = errors.New("at least one player is required")
	ErrRegistrationClosed    = errors.New("tournament is not open for registration")

	// Платёжный поток
	ErrInvalidPaymentSignature = errors.New("invalid payment signature")
	ErrPaymentGateway          = errors.New("payment gateway request failed")
	// ErrRegistrationNotRecorded — платёж подтверждён, но коммит регистрации
	// не прошёл. Требует ручной сверки, никогда не маскируется под успех.
	ErrRegistrationNotRecorded = errors.New("payment confirmed, registration not recorded")

	// Инфраструктура
	ErrStoreUnavailable = errors.New("data store unavailable")

	// Админ-операции
	ErrTournamentHasRegistrations = errors.New("cannot delete tournament with registrations")
	ErrTournamentInvalidCapacity  = errors.New("tournament max teams must be positive")
	ErrTournamentInvalidDateRange = errors.New("tournament end date must be after start date")
	ErrTournamentTitleRequired    = errors.New("tournament title is required")
	ErrUploaderUnavailable        = errors.New("file storage is not configured")

	// Аутентификация
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
)
