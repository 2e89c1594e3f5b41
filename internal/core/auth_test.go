package core

import (
	"testing"

	"github.com/lumachat/luma/internal/errs"
)

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		first    string
		last     string
		wantErr  bool
	}{
		{"valid", "ada@example.com", "password123", "Ada", "Lovelace", false},
		{"bad email no at", "ada.example.com", "password123", "Ada", "Lovelace", true},
		{"bad email no domain", "ada@", "password123", "Ada", "Lovelace", true},
		{"short password", "ada@example.com", "pass", "Ada", "Lovelace", true},
		{"empty first name", "ada@example.com", "password123", "", "Lovelace", true},
		{"long first name", "ada@example.com", "password123", string(make([]byte, 51)), "Lovelace", true},
		{"empty last name", "ada@example.com", "password123", "Ada", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestService(t)
			_, err := s.Register(tt.email, tt.password, tt.first, tt.last)
			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errs.IsInput(err) {
				t.Errorf("Register() error kind = %v, want InputError", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s, _ := newTestService(t)
	mustRegister(t, s, "ada@example.com", "Ada", "Lovelace")

	_, err := s.Register("ada@example.com", "password123", "Other", "Person")
	if !errs.IsInput(err) {
		t.Fatalf("Register with duplicate email = %v, want InputError", err)
	}
}

func TestRegisterHandleGeneration(t *testing.T) {
	s, _ := newTestService(t)

	tests := []struct {
		email      string
		first      string
		last       string
		wantHandle string
	}{
		{"a@example.com", "Ada", "Lovelace", "adalovelace"},
		{"b@example.com", "Ada", "Lovelace", "adalovelace0"},
		{"c@example.com", "Ada", "Lovelace", "adalovelace1"},
		{"d@example.com", "Grace", "O'Connor-Hopper III", "graceoconnorhopperii"},
	}

	viewer := ""
	for i, tt := range tests {
		result := mustRegister(t, s, tt.email, tt.first, tt.last)
		if i == 0 {
			viewer = result.Token
		}
		profile, err := s.Profile(viewer, result.AuthUserID)
		if err != nil {
			t.Fatalf("Profile(%d) failed: %v", result.AuthUserID, err)
		}
		if profile.Handle != tt.wantHandle {
			t.Errorf("handle for %s %s = %q, want %q", tt.first, tt.last, profile.Handle, tt.wantHandle)
		}
	}
}

func TestLogin(t *testing.T) {
	s, _ := newTestService(t)
	reg := mustRegister(t, s, "ada@example.com", "Ada", "Lovelace")

	got, err := s.Login("ada@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if got.AuthUserID != reg.AuthUserID {
		t.Errorf("Login user id = %d, want %d", got.AuthUserID, reg.AuthUserID)
	}
	if got.Token == reg.Token {
		t.Error("Login returned the registration token; want a fresh session")
	}

	if _, err := s.Login("ada@example.com", "wrongpass"); !errs.IsInput(err) {
		t.Errorf("Login with wrong password = %v, want InputError", err)
	}
	if _, err := s.Login("nobody@example.com", "password123"); !errs.IsInput(err) {
		t.Errorf("Login with unknown email = %v, want InputError", err)
	}
}

func TestLogoutInvalidatesExactlyOneToken(t *testing.T) {
	s, _ := newTestService(t)
	reg := mustRegister(t, s, "ada@example.com", "Ada", "Lovelace")
	second, err := s.Login("ada@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := s.Logout(reg.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	// The logged-out token no longer resolves anywhere.
	if _, err := s.ChannelsList(reg.Token); !errs.IsAccess(err) {
		t.Errorf("using logged-out token = %v, want AccessError", err)
	}
	// The other session is untouched.
	if _, err := s.ChannelsList(second.Token); err != nil {
		t.Errorf("using live token after another session's logout: %v", err)
	}
	// A second logout of the same token fails.
	if _, err := s.Logout(reg.Token); !errs.IsAccess(err) {
		t.Errorf("double logout = %v, want AccessError", err)
	}
}

func TestLogoutGarbageToken(t *testing.T) {
	s, _ := newTestService(t)
	if _, err := s.Logout("not-a-token"); !errs.IsAccess(err) {
		t.Errorf("Logout(garbage) = %v, want AccessError", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	s, mailer := newTestService(t)
	reg := mustRegister(t, s, "ada@example.com", "Ada", "Lovelace")

	if err := s.PasswordResetRequest("ada@example.com"); err != nil {
		t.Fatalf("PasswordResetRequest failed: %v", err)
	}
	if len(mailer.codes) != 1 {
		t.Fatalf("mailer got %d codes, want 1", len(mailer.codes))
	}

	// Requesting a reset revokes existing sessions.
	if _, err := s.ChannelsList(reg.Token); !errs.IsAccess(err) {
		t.Errorf("token still live after reset request: %v", err)
	}

	if err := s.PasswordResetReset(mailer.codes[0], "short"); !errs.IsInput(err) {
		t.Errorf("reset with short password = %v, want InputError", err)
	}
	if err := s.PasswordResetReset("bogus-code", "newpassword"); !errs.IsInput(err) {
		t.Errorf("reset with bogus code = %v, want InputError", err)
	}
	if err := s.PasswordResetReset(mailer.codes[0], "newpassword"); err != nil {
		t.Fatalf("PasswordResetReset failed: %v", err)
	}

	// The code is single-use.
	if err := s.PasswordResetReset(mailer.codes[0], "anotherpass"); !errs.IsInput(err) {
		t.Errorf("reused reset code = %v, want InputError", err)
	}

	if _, err := s.Login("ada@example.com", "password123"); !errs.IsInput(err) {
		t.Errorf("old password still accepted after reset")
	}
	if _, err := s.Login("ada@example.com", "newpassword"); err != nil {
		t.Errorf("new password rejected after reset: %v", err)
	}
}

func TestPasswordResetRequestUnknownEmail(t *testing.T) {
	s, mailer := newTestService(t)
	// Silent no-op: the endpoint must not reveal which emails exist.
	if err := s.PasswordResetRequest("nobody@example.com"); err != nil {
		t.Fatalf("PasswordResetRequest(unknown) = %v, want nil", err)
	}
	if len(mailer.codes) != 0 {
		t.Errorf("mailer got %d codes for unknown email, want 0", len(mailer.codes))
	}
}
