package core

import (
	"strings"

	"github.com/lumachat/luma/internal/errs"
	"github.com/lumachat/luma/internal/models"
	"github.com/lumachat/luma/internal/store"
)

const removedUserBody = "Removed user"

// Search returns every message containing the query, across all channels
// and DMs the caller is a member of. Matching is a case-sensitive
// substring test.
func (s *Service) Search(token, query string) ([]MessageView, error) {
	out := []MessageView{}
	err := s.store.View(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if l := len(query); l < 1 || l > maxMessageLen {
			return errs.Input("query must be between 1 and 1000 characters")
		}
		forEachMessage(st, func(m *models.Message, loc store.Location) {
			if st.CanInteract(uid, loc) && strings.Contains(m.Body, query) {
				out = append(out, messageView(m, uid))
			}
		})
		return nil
	})
	return out, err
}

// Notifications returns the caller's 20 most recent notifications, newest
// first.
func (s *Service) Notifications(token string) ([]models.Notification, error) {
	out := []models.Notification{}
	err := s.store.View(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		all := st.Users[uid].Notifications
		for i := len(all) - 1; i >= 0 && len(out) < 20; i-- {
			out = append(out, all[i])
		}
		return nil
	})
	return out, err
}

// AdminUserRemove anonymizes a user: their messages read "Removed user",
// their profile reads "Removed user", their email and handle become
// reusable, and they are detached from every container and session. The
// record and id survive so attribution stays stable. Global owners only;
// the last global owner cannot be removed.
func (s *Service) AdminUserRemove(token string, uID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		target, ok := st.Users[uID]
		if !ok || target.Removed {
			return errs.Input("invalid user id")
		}
		if !st.IsGlobalOwner(uid) {
			return errs.Access("global owner permission required")
		}
		if target.PermLevel == models.PermGlobalOwner && countGlobalOwners(st) == 1 {
			return errs.Input("cannot remove the only global owner")
		}

		forEachMessage(st, func(m *models.Message, _ store.Location) {
			if m.Author == uID {
				m.Body = removedUserBody
			}
		})
		for _, id := range target.Channels {
			ch := st.Channels[id]
			ch.Members = filterID(ch.Members, uID)
			ch.Owners = filterID(ch.Owners, uID)
		}
		for _, id := range target.DMs {
			d := st.DMs[id]
			d.Members = filterID(d.Members, uID)
		}
		st.ReleaseUserKeys(uID)
		st.RevokeSessions(uID)

		target.Channels = []int{}
		target.DMs = []int{}
		target.Email = ""
		target.Handle = ""
		target.NameFirst = "Removed"
		target.NameLast = "user"
		target.Removed = true
		return nil
	})
}

// AdminPermissionChange sets a user's global permission level. Global
// owners only; the last global owner cannot be demoted.
func (s *Service) AdminPermissionChange(token string, uID, permissionID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		target, ok := st.Users[uID]
		if !ok || target.Removed {
			return errs.Input("invalid user id")
		}
		if permissionID != models.PermGlobalOwner && permissionID != models.PermMember {
			return errs.Input("invalid permission id")
		}
		if !st.IsGlobalOwner(uid) {
			return errs.Access("global owner permission required")
		}
		if target.PermLevel == models.PermGlobalOwner &&
			permissionID == models.PermMember && countGlobalOwners(st) == 1 {
			return errs.Input("cannot demote the only global owner")
		}
		target.PermLevel = permissionID
		return nil
	})
}

func countGlobalOwners(st *store.State) int {
	n := 0
	for _, u := range st.Users {
		if !u.Removed && u.PermLevel == models.PermGlobalOwner {
			n++
		}
	}
	return n
}
