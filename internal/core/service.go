// Package core implements every operation the HTTP layer exposes: auth,
// channels, DMs, the message lifecycle, standups, search, notifications,
// and admin. Each operation takes the caller's token first, resolves it,
// validates the target and the caller's permission in that order, then
// mutates the store, all inside one store transaction, so the whole
// operation is atomic.
//
// Operations fail with one of two error kinds (see internal/errs); the
// transport layer maps those to status codes. Nothing here knows about
// HTTP.
package core

import (
	"time"

	"github.com/lumachat/luma/internal/auth"
	"github.com/lumachat/luma/internal/errs"
	"github.com/lumachat/luma/internal/sched"
	"github.com/lumachat/luma/internal/store"
	"go.uber.org/zap"
)

// Mailer delivers password-reset codes. Real delivery is an external
// concern; the server wires a logging implementation.
type Mailer interface {
	SendPasswordReset(email, code string) error
}

// Service carries the shared collaborators every operation needs.
type Service struct {
	store  *store.Store
	sched  *sched.Scheduler
	mailer Mailer
	secret string
	logger *zap.Logger

	// now is injectable so tests can pin timestamps and delays.
	now func() time.Time
}

func New(st *store.Store, sc *sched.Scheduler, mailer Mailer, jwtSecret string, logger *zap.Logger) *Service {
	return &Service{
		store:  st,
		sched:  sc,
		mailer: mailer,
		secret: jwtSecret,
		logger: logger,
		now:    time.Now,
	}
}

// Scheduler exposes the task scheduler so the server can drain pending
// tasks on shutdown.
func (s *Service) Scheduler() *sched.Scheduler { return s.sched }

// Clear wipes the store back to empty. Used by the test harness between
// scenarios; idempotent.
func (s *Service) Clear() {
	s.store.Clear()
}

// resolveToken maps a token to a user id, or fails with AccessError. A
// token resolves only if its signature verifies and its session is still
// registered to the same user; logout removes the session, so a stale
// token fails here even though it still parses.
func (s *Service) resolveToken(st *store.State, token string) (int, error) {
	claims, err := auth.ParseToken(token, s.secret)
	if err != nil {
		return 0, errs.Access("invalid token")
	}
	uid, ok := st.Sessions[claims.SessionID]
	if !ok || uid != claims.UserID {
		return 0, errs.Access("invalid token")
	}
	return uid, nil
}
