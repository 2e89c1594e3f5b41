package core

import (
	"testing"

	"github.com/lumachat/luma/internal/sched"
	"github.com/lumachat/luma/internal/store"
	"go.uber.org/zap"
)

// captureMailer records reset codes instead of delivering them.
type captureMailer struct {
	emails []string
	codes  []string
}

func (m *captureMailer) SendPasswordReset(email, code string) error {
	m.emails = append(m.emails, email)
	m.codes = append(m.codes, code)
	return nil
}

func newTestService(t *testing.T) (*Service, *captureMailer) {
	t.Helper()
	mailer := &captureMailer{}
	s := New(store.New(), sched.New(), mailer, "test-secret", zap.NewNop())
	return s, mailer
}

// mustRegister registers a user or fails the test.
func mustRegister(t *testing.T, s *Service, email, first, last string) *AuthResult {
	t.Helper()
	result, err := s.Register(email, "password123", first, last)
	if err != nil {
		t.Fatalf("Register(%q) failed: %v", email, err)
	}
	return result
}

// mustChannel creates a public channel or fails the test.
func mustChannel(t *testing.T, s *Service, token, name string) int {
	t.Helper()
	id, err := s.ChannelsCreate(token, name, true)
	if err != nil {
		t.Fatalf("ChannelsCreate(%q) failed: %v", name, err)
	}
	return id
}

// mustSend posts a channel message or fails the test.
func mustSend(t *testing.T, s *Service, token string, channelID int, body string) int {
	t.Helper()
	id, err := s.Send(token, channelID, body)
	if err != nil {
		t.Fatalf("Send(%q) failed: %v", body, err)
	}
	return id
}
