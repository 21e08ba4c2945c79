package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vitalog/vitalog/internal/models"
	"github.com/vitalog/vitalog/pkg/logger"
	"github.com/vitalog/vitalog/pkg/mail"
	"github.com/vitalog/vitalog/pkg/metrics"
)

// Channel names.
const (
	ChannelInApp = "in_app"
	ChannelEmail = "email"
)

// ChannelResult reports the outcome of one channel delivery attempt.
type ChannelResult struct {
	Channel string `json:"channel"`
	OK      bool   `json:"ok"`
	Err     error  `json:"-"`
}

// Channel delivers a persisted notification to a user over one mechanism.
type Channel interface {
	Name() string
	Send(ctx context.Context, profile UserProfile, notification *models.Notification) error
}

// Dispatcher fans a persisted notification out to the user's enabled channels,
// isolating per-channel failure. A failed channel is recorded in its result
// and never aborts the remaining channels or the caller.
type Dispatcher struct {
	channels []Channel
	timeout  time.Duration
	log      *zap.Logger
}

// DispatcherOption customises the Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSendTimeout bounds each channel send. A slow provider delays only the
// current user's remaining channel work, never the whole tick.
func WithSendTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// NewDispatcher constructs a Dispatcher over the supplied channels.
func NewDispatcher(channels []Channel, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		channels: channels,
		timeout:  15 * time.Second,
		log:      logger.WithModule("dispatcher"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch delivers the notification over every channel enabled in settings
// and returns one result per attempted channel.
func (d *Dispatcher) Dispatch(ctx context.Context, profile UserProfile, notification *models.Notification, settings Settings) []ChannelResult {
	results := make([]ChannelResult, 0, len(d.channels))

	for _, channel := range d.channels {
		if !channelEnabled(settings, channel.Name()) {
			continue
		}

		err := d.send(ctx, channel, profile, notification)
		result := ChannelResult{Channel: channel.Name(), OK: err == nil, Err: err}
		if err != nil {
			metrics.Dispatches.WithLabelValues(channel.Name(), "error").Inc()
			d.log.Warn("channel delivery failed",
				zap.String("channel", channel.Name()),
				zap.String("user_id", profile.UserID),
				zap.String("notification_id", notification.ID),
				zap.Error(err),
			)
		} else {
			metrics.Dispatches.WithLabelValues(channel.Name(), "ok").Inc()
		}
		results = append(results, result)
	}

	return results
}

func (d *Dispatcher) send(ctx context.Context, channel Channel, profile UserProfile, notification *models.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("channel panic: %v", r)
		}
	}()

	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	return channel.Send(sendCtx, profile, notification)
}

func channelEnabled(settings Settings, name string) bool {
	switch name {
	case ChannelInApp:
		return settings.ChannelInApp
	case ChannelEmail:
		return settings.ChannelEmail
	default:
		return false
	}
}

// Broadcaster pushes a created notification to connected in-app clients.
type Broadcaster interface {
	Broadcast(userID string, notification *models.Notification)
}

// InAppChannel represents in-app delivery. The persisted row is itself the
// in-app representation, so delivery always succeeds; when a hub is attached
// the notification is additionally pushed to connected clients best-effort.
type InAppChannel struct {
	hub Broadcaster
}

// NewInAppChannel constructs the in-app channel. hub may be nil.
func NewInAppChannel(hub Broadcaster) *InAppChannel {
	return &InAppChannel{hub: hub}
}

func (c *InAppChannel) Name() string { return ChannelInApp }

func (c *InAppChannel) Send(_ context.Context, profile UserProfile, notification *models.Notification) error {
	if c.hub != nil {
		c.hub.Broadcast(profile.UserID, notification)
	}
	return nil
}

// EmailChannel delivers notifications via the configured mailer using a fixed
// title and message template.
type EmailChannel struct {
	mailer mail.Mailer
}

// NewEmailChannel constructs the email channel.
func NewEmailChannel(mailer mail.Mailer) *EmailChannel {
	return &EmailChannel{mailer: mailer}
}

func (c *EmailChannel) Name() string { return ChannelEmail }

func (c *EmailChannel) Send(ctx context.Context, profile UserProfile, notification *models.Notification) error {
	if c.mailer == nil {
		return fmt.Errorf("email channel: mailer is not configured")
	}
	if profile.Email == "" {
		return fmt.Errorf("email channel: user %s has no email address", profile.UserID)
	}

	return c.mailer.Send(ctx, mail.ReminderMessage(profile.Email, profile.Name, notification.Title, notification.Message))
}
