package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"growmate/internal/config"
	"growmate/internal/logger"
)

func TestEmailNotifier_SkipsWithoutSMTP(t *testing.T) {
	n := NewEmailNotifier(config.EmailConfig{}, logger.NewNop())
	called := false
	n.dial = func(*gomail.Message) error {
		called = true
		return nil
	}

	require.NoError(t, n.Send(context.Background(), "a@b.c", "hi", "body"))
	assert.False(t, called)
	assert.False(t, n.Enabled())
}

func TestEmailNotifier_BuildsMessage(t *testing.T) {
	n := NewEmailNotifier(config.EmailConfig{SMTPHost: "smtp.local", SMTPPort: 25, From: "noreply@growmate.local"}, logger.NewNop())
	var sent bytes.Buffer
	n.dial = func(m *gomail.Message) error {
		_, err := m.WriteTo(&sent)
		return err
	}

	require.NoError(t, n.Send(context.Background(), "gardener@example.com", "Password Reset Request", "Click here"))
	out := sent.String()
	assert.Contains(t, out, "To: gardener@example.com")
	assert.Contains(t, out, "Subject: Password Reset Request")
	assert.Contains(t, out, "Click here")
}

func TestEmailNotifier_WrapsDialErrors(t *testing.T) {
	n := NewEmailNotifier(config.EmailConfig{SMTPHost: "smtp.local", From: "x@y.z"}, logger.NewNop())
	n.dial = func(*gomail.Message) error { return errors.New("connection refused") }

	err := n.Send(context.Background(), "a@b.c", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
