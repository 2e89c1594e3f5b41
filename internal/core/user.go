package core

import (
	"github.com/lumachat/luma/internal/errs"
	"github.com/lumachat/luma/internal/models"
	"github.com/lumachat/luma/internal/store"
)

// Profile returns the public view of any user, including removed ones;
// their id stays resolvable for message attribution.
func (s *Service) Profile(token string, uID int) (*models.Profile, error) {
	var p models.Profile
	err := s.store.View(func(st *store.State) error {
		if _, err := s.resolveToken(st, token); err != nil {
			return err
		}
		u, ok := st.Users[uID]
		if !ok {
			return errs.Input("invalid user id")
		}
		p = profileOf(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetName changes the caller's first and last name.
func (s *Service) SetName(token, nameFirst, nameLast string) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if l := len(nameFirst); l < 1 || l > 50 {
			return errs.Input("first name must be between 1 and 50 characters")
		}
		if l := len(nameLast); l < 1 || l > 50 {
			return errs.Input("last name must be between 1 and 50 characters")
		}
		st.Users[uid].NameFirst = nameFirst
		st.Users[uid].NameLast = nameLast
		return nil
	})
}

// SetEmail changes the caller's email, keeping the uniqueness index in
// sync.
func (s *Service) SetEmail(token, email string) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !emailRe.MatchString(email) {
			return errs.Input("invalid email format")
		}
		if owner, taken := st.EmailIndex[email]; taken && owner != uid {
			return errs.Input("email is already used")
		}
		return st.SetEmail(uid, email)
	})
}

// SetHandle changes the caller's handle: 3 to 20 characters, alphanumeric
// only, unique.
func (s *Service) SetHandle(token, handle string) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if l := len(handle); l < 3 || l > 20 {
			return errs.Input("handle must be between 3 and 20 characters")
		}
		for i := 0; i < len(handle); i++ {
			if !isHandleChar(handle[i]) {
				return errs.Input("handle must be alphanumeric")
			}
		}
		if owner, taken := st.HandleIndex[handle]; taken && owner != uid {
			return errs.Input("handle is already taken")
		}
		return st.SetHandle(uid, handle)
	})
}

// UsersAll lists the profiles of every active user.
func (s *Service) UsersAll(token string) ([]models.Profile, error) {
	out := []models.Profile{}
	err := s.store.View(func(st *store.State) error {
		if _, err := s.resolveToken(st, token); err != nil {
			return err
		}
		for _, id := range st.UserIDs() {
			if u := st.Users[id]; !u.Removed {
				out = append(out, profileOf(u))
			}
		}
		return nil
	})
	return out, err
}

// Metric is one (value, timestamp) observation. An ordered record, not a
// set: the value and the timestamp are distinct fields even when their
// numbers collide.
type Metric struct {
	Value     int   `json:"value"`
	TimeStamp int64 `json:"time_stamp"`
}

// UserStats is the wire shape of user/stats.
type UserStats struct {
	ChannelsJoined  []Metric `json:"channels_joined"`
	DmsJoined       []Metric `json:"dms_joined"`
	MessagesSent    []Metric `json:"messages_sent"`
	InvolvementRate float64  `json:"involvement_rate"`
}

// UsersStats is the wire shape of users/stats.
type UsersStats struct {
	ChannelsExist   []Metric `json:"channels_exist"`
	DmsExist        []Metric `json:"dms_exist"`
	MessagesExist   []Metric `json:"messages_exist"`
	UtilizationRate float64  `json:"utilization_rate"`
}

// Stats reports the caller's involvement: containers joined, live
// messages authored, and the ratio of those against everything that
// exists. The denominator counts every message id ever issued, so
// removals lower involvement rather than erase history.
func (s *Service) Stats(token string) (*UserStats, error) {
	var stats *UserStats
	err := s.store.View(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		u := st.Users[uid]
		now := s.now().Unix()

		sent := 0
		forEachMessage(st, func(m *models.Message, _ store.Location) {
			if m.Author == uid {
				sent++
			}
		})

		numerator := len(u.Channels) + len(u.DMs) + sent
		denominator := len(st.Channels) + len(st.DMs) + st.NextMessageID
		rate := 0.0
		if denominator > 0 {
			rate = float64(numerator) / float64(denominator)
		}
		stats = &UserStats{
			ChannelsJoined:  []Metric{{Value: len(u.Channels), TimeStamp: now}},
			DmsJoined:       []Metric{{Value: len(u.DMs), TimeStamp: now}},
			MessagesSent:    []Metric{{Value: sent, TimeStamp: now}},
			InvolvementRate: rate,
		}
		return nil
	})
	return stats, err
}

// WorkspaceStats reports workspace-wide totals. Utilization is the
// fraction of registered users who are in at least one channel or DM.
func (s *Service) WorkspaceStats(token string) (*UsersStats, error) {
	var stats *UsersStats
	err := s.store.View(func(st *store.State) error {
		if _, err := s.resolveToken(st, token); err != nil {
			return err
		}
		now := s.now().Unix()

		joined := 0
		for _, u := range st.Users {
			if len(u.Channels) > 0 || len(u.DMs) > 0 {
				joined++
			}
		}
		rate := 0.0
		if len(st.Users) > 0 {
			rate = float64(joined) / float64(len(st.Users))
		}

		total := 0
		forEachMessage(st, func(*models.Message, store.Location) { total++ })

		stats = &UsersStats{
			ChannelsExist:   []Metric{{Value: len(st.Channels), TimeStamp: now}},
			DmsExist:        []Metric{{Value: len(st.DMs), TimeStamp: now}},
			MessagesExist:   []Metric{{Value: total, TimeStamp: now}},
			UtilizationRate: rate,
		}
		return nil
	})
	return stats, err
}

// forEachMessage visits every live message in every container.
func forEachMessage(st *store.State, fn func(m *models.Message, loc store.Location)) {
	for _, id := range st.ChannelIDs() {
		for _, m := range st.Channels[id].Messages {
			fn(m, store.Location{ChannelID: id, DmID: -1})
		}
	}
	for _, id := range st.DMIDs() {
		for _, m := range st.DMs[id].Messages {
			fn(m, store.Location{ChannelID: -1, DmID: id})
		}
	}
}
