package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"account-service/internal/events"
	"account-service/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUserRegisteredEvent_Marshal(t *testing.T) {
	lang := "es"
	u := &model.User{
		ID:           uuid.New(),
		Name:         "Ana",
		Email:        "ana@x.com",
		PasswordHash: "$2a$10$secret",
		Language:     &lang,
		CreatedAt:    time.Now(),
	}

	b, err := json.Marshal(events.NewUserRegisteredEvent(u))
	require.NoError(t, err)
	require.NotContains(t, string(b), "secret")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "user.registered", decoded["event_type"])
	require.Equal(t, u.ID.String(), decoded["user_id"])
	require.Equal(t, "es", decoded["preferences"].(map[string]interface{})["language"])
}

func TestPreferencesUpdatedEvent_Marshal(t *testing.T) {
	goal := 10
	u := &model.User{ID: uuid.New(), DailyGoal: &goal, UpdatedAt: time.Now()}

	b, err := json.Marshal(events.NewPreferencesUpdatedEvent(u))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "user.preferences.updated", decoded["event_type"])
	require.EqualValues(t, 10, decoded["preferences"].(map[string]interface{})["daily_goal"])
}

func TestNoopPublisher(t *testing.T) {
	var p events.EventPublisher = events.NoopPublisher{}
	require.NoError(t, p.PublishUserRegistered(&model.User{}))
	require.NoError(t, p.PublishPreferencesUpdated(&model.User{}))
}
