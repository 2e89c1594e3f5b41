package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lumachat/luma/internal/auth"
	"github.com/lumachat/luma/internal/errs"
	"github.com/lumachat/luma/internal/models"
	"github.com/lumachat/luma/internal/store"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9]+[\._]?[a-zA-Z0-9]+[@]\w+[.]\w{2,3}$`)

// AuthResult is what register and login return: a fresh session token and
// the id it resolves to.
type AuthResult struct {
	Token      string `json:"token"`
	AuthUserID int    `json:"auth_user_id"`
}

// Register creates a user and opens their first session. The first user
// ever registered becomes a global owner.
func (s *Service) Register(email, password, nameFirst, nameLast string) (*AuthResult, error) {
	if !emailRe.MatchString(email) {
		return nil, errs.Input("invalid email format")
	}
	if len(password) < 6 {
		return nil, errs.Input("password must be at least 6 characters")
	}
	if l := len(nameFirst); l < 1 || l > 50 {
		return nil, errs.Input("first name must be between 1 and 50 characters")
	}
	if l := len(nameLast); l < 1 || l > 50 {
		return nil, errs.Input("last name must be between 1 and 50 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var result *AuthResult
	err = s.store.Update(func(st *store.State) error {
		if _, taken := st.EmailIndex[email]; taken {
			return errs.Input("email is already used")
		}

		perm := models.PermMember
		if st.NextUserID == 0 {
			perm = models.PermGlobalOwner
		}
		u := &models.User{
			Email:        email,
			PasswordHash: string(hash),
			NameFirst:    nameFirst,
			NameLast:     nameLast,
			Handle:       generateHandle(st, nameFirst, nameLast),
			PermLevel:    perm,
		}
		uid, err := st.AddUser(u)
		if err != nil {
			return errs.Input(err.Error())
		}

		token, err := s.openSession(st, uid)
		if err != nil {
			return err
		}
		result = &AuthResult{Token: token, AuthUserID: uid}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.Int("u_id", result.AuthUserID))
	return result, nil
}

// Login opens a new session for an existing user. The error is the same
// for an unknown email and a wrong password.
func (s *Service) Login(email, password string) (*AuthResult, error) {
	var result *AuthResult
	err := s.store.Update(func(st *store.State) error {
		u, ok := st.UserByEmail(email)
		if !ok || u.Removed {
			return errs.Input("invalid email or password")
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return errs.Input("invalid email or password")
		}
		token, err := s.openSession(st, u.ID)
		if err != nil {
			return err
		}
		result = &AuthResult{Token: token, AuthUserID: u.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LogoutResult mirrors the wire shape of auth/logout.
type LogoutResult struct {
	IsSuccess bool `json:"is_success"`
}

// Logout invalidates exactly the session the token belongs to. The
// user's other sessions stay live.
func (s *Service) Logout(token string) (*LogoutResult, error) {
	err := s.store.Update(func(st *store.State) error {
		claims, err := auth.ParseToken(token, s.secret)
		if err != nil {
			return errs.Access("invalid token")
		}
		uid, ok := st.Sessions[claims.SessionID]
		if !ok || uid != claims.UserID {
			return errs.Access("invalid token")
		}
		delete(st.Sessions, claims.SessionID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &LogoutResult{IsSuccess: true}, nil
}

// PasswordResetRequest mints a reset code for the account and hands it to
// the mailer. Unknown emails are a silent no-op so the endpoint does not
// reveal which addresses are registered. All of the user's sessions are
// revoked while the reset is outstanding.
func (s *Service) PasswordResetRequest(email string) error {
	var code string
	err := s.store.Update(func(st *store.State) error {
		u, ok := st.UserByEmail(email)
		if !ok || u.Removed {
			return nil
		}
		code = uuid.NewString()
		st.ResetCodes[code] = u.ID
		st.RevokeSessions(u.ID)
		return nil
	})
	if err != nil || code == "" {
		return err
	}
	if err := s.mailer.SendPasswordReset(email, code); err != nil {
		s.logger.Error("failed to deliver reset code", zap.Error(err))
	}
	return nil
}

// PasswordResetReset consumes a reset code and installs a new password.
func (s *Service) PasswordResetReset(code, newPassword string) error {
	if len(newPassword) < 6 {
		return errs.Input("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.Update(func(st *store.State) error {
		uid, ok := st.ResetCodes[code]
		if !ok {
			return errs.Input("invalid reset code")
		}
		delete(st.ResetCodes, code)
		st.Users[uid].PasswordHash = string(hash)
		return nil
	})
}

// openSession registers a new session id and mints its token.
func (s *Service) openSession(st *store.State, userID int) (string, error) {
	sessionID := uuid.NewString()
	token, err := auth.GenerateToken(userID, sessionID, s.secret)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	st.Sessions[sessionID] = userID
	return token, nil
}

// generateHandle derives a unique handle: the lowercased alphanumeric
// characters of first+last truncated to 20, then a numeric suffix
// (0, 1, ...) if that base is taken. The suffix may push past 20.
func generateHandle(st *store.State, nameFirst, nameLast string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(nameFirst + nameLast) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if len(base) > 20 {
		base = base[:20]
	}
	handle := base
	for n := 0; ; n++ {
		if _, taken := st.HandleIndex[handle]; !taken {
			return handle
		}
		handle = fmt.Sprintf("%s%d", base, n)
	}
}
