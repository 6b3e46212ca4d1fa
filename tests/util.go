package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Axelresells/AxelScale-Formacion/core"
	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

// NewConfig returns a TEST configuration that does not depend on the environment.
func NewConfig() *core.Config {
	return &core.Config{
		AppName:               "AxelScale",
		Env:                   "TEST",
		Build:                 "test",
		TestMode:              true,
		SecretKey:             "test-secret-key",
		DefaultFromEmail:      "AxelScale <noreply@axelscale.test>",
		FrontendBaseURL:       "http://localhost:8000",
		LoginLinkTimeoutDelta: 30 * time.Minute,
		AdminEmail:            "admin@axelscale.test",
		DiscordURL:            "https://discord.gg/dESsRhG3",
		SupportPhone:          "+34 626 04 06 64",
		Server: core.ServerConfig{
			Host:               ":8000",
			ShutdownTimeout:    time.Second,
			JWTExpirationDelta: time.Hour,
			DisableReqLogs:     true,
		},
		Database: core.DatabaseConfig{Engine: "inmem"},
	}
}

func CreateUser(t *testing.T, repo user.Repository, name, email, role string, createdAt ...time.Time) user.User {
	tstamp := time.Now().UTC().Truncate(time.Microsecond)
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC().Truncate(time.Microsecond)
	}
	usr, err := repo.CreateUser(context.Background(), user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateSubscription(t *testing.T, repo subscription.Repository, userID, plan, status string, periodEnd time.Time) subscription.Subscription {
	now := time.Now().UTC().Truncate(time.Microsecond)
	sub, err := repo.CreateSubscription(context.Background(), subscription.Subscription{
		UserID:           userID,
		Plan:             plan,
		Status:           status,
		CurrentPeriodEnd: periodEnd.UTC(),
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		t.Fatalf("CreateSubscription() failed: %v", err)
	}
	return sub
}
