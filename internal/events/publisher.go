package events

import (
	"account-service/internal/model"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	SubjectUserRegistered     = "user.registered"
	SubjectPreferencesUpdated = "user.preferences.updated"
)

type EventPublisher interface {
	PublishUserRegistered(user *model.User) error
	PublishPreferencesUpdated(user *model.User) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL, nats.Name("account-service"))

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

func (p *NatsPublisher) Close() {
	p.conn.Close()
}

type UserRegisteredEvent struct {
	EventType    string            `json:"event_type"`
	UserID       uuid.UUID         `json:"user_id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Preferences  model.Preferences `json:"preferences"`
	RegisteredAt time.Time         `json:"registered_at"`
}

type PreferencesUpdatedEvent struct {
	EventType   string            `json:"event_type"`
	UserID      uuid.UUID         `json:"user_id"`
	Preferences model.Preferences `json:"preferences"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func NewUserRegisteredEvent(user *model.User) UserRegisteredEvent {
	return UserRegisteredEvent{
		EventType:    SubjectUserRegistered,
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Preferences:  user.Preferences(),
		RegisteredAt: user.CreatedAt,
	}
}

func NewPreferencesUpdatedEvent(user *model.User) PreferencesUpdatedEvent {
	return PreferencesUpdatedEvent{
		EventType:   SubjectPreferencesUpdated,
		UserID:      user.ID,
		Preferences: user.Preferences(),
		UpdatedAt:   user.UpdatedAt,
	}
}

func (p *NatsPublisher) PublishUserRegistered(user *model.User) error {
	return p.publish(SubjectUserRegistered, user.ID, NewUserRegisteredEvent(user))
}

func (p *NatsPublisher) PublishPreferencesUpdated(user *model.User) error {
	return p.publish(SubjectPreferencesUpdated, user.ID, NewPreferencesUpdatedEvent(user))
}

func (p *NatsPublisher) publish(subject string, userID uuid.UUID, event any) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		slog.Error("Error marshalling event JSON", slog.String("subject", subject), slog.String("error", err.Error()))
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		slog.Error("Error publishing to NATS", slog.String("subject", subject), slog.String("error", err.Error()))
		return err
	}

	slog.Debug("Published event to NATS", slog.String("subject", subject), slog.String("user_id", userID.String()))

	return nil
}

// NoopPublisher drops every event. Used when NATS_URL is not set.
type NoopPublisher struct{}

func (NoopPublisher) PublishUserRegistered(*model.User) error     { return nil }
func (NoopPublisher) PublishPreferencesUpdated(*model.User) error { return nil }
