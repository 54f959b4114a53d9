package usecase

import (
	"context"
	"time"

	"colchester-plumber-api/internal/domain"
	"colchester-plumber-api/pkg/email"
)

// HealthSettings says which optional settings were supplied explicitly.
type HealthSettings struct {
	EmailDriver      string
	FromEmailSet     bool
	BusinessEmailSet bool
	RedisEnabled     bool
}

type healthUsecase struct {
	sender   email.Sender
	settings HealthSettings
	now      func() time.Time
}

func NewHealthUsecase(sender email.Sender, settings HealthSettings) domain.HealthUsecase {
	return &healthUsecase{
		sender:   sender,
		settings: settings,
		now:      time.Now,
	}
}

func (u *healthUsecase) Check(ctx context.Context) domain.HealthStatus {
	store := "memory"
	if u.settings.RedisEnabled {
		store = "redis"
	}
	return domain.HealthStatus{
		Status:    "OK",
		Message:   "Quote API is running",
		Timestamp: u.now().UTC(),
		Environment: domain.HealthEnvironment{
			EmailDriver:    u.settings.EmailDriver,
			HasAPIKey:      u.sender.IsConfigured(),
			FromEmail:      setOrNot(u.settings.FromEmailSet),
			BusinessEmail:  setOrNot(u.settings.BusinessEmailSet),
			RateLimitStore: store,
		},
	}
}

func setOrNot(ok bool) string {
	if ok {
		return "Set"
	}
	return "Not set"
}
