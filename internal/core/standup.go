package core

import (
	"time"

	"github.com/lumachat/luma/internal/errs"
	"github.com/lumachat/luma/internal/models"
	"github.com/lumachat/luma/internal/store"
)

// StandupActiveResult is the wire shape of standup/active. TimeFinish is
// null while no standup is running.
type StandupActiveResult struct {
	IsActive   bool   `json:"is_active"`
	TimeFinish *int64 `json:"time_finish"`
}

// StandupStart opens a standup window on a channel for length seconds and
// schedules the flush. Returns the finish time.
func (s *Service) StandupStart(token string, channelID int, length int) (int64, error) {
	var finish int64
	var starter int
	err := s.store.Update(func(st *store.State) error {
		ch, ok := st.Channels[channelID]
		if !ok {
			return errs.Input("invalid channel id")
		}
		if ch.Standup.Active {
			return errs.Input("a standup is already active in this channel")
		}
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !st.IsChannelMember(uid, channelID) {
			return errs.Access("not a member of this channel")
		}
		starter = uid
		finish = s.now().Unix() + int64(length)
		ch.Standup = models.Standup{Active: true, TimeFinish: finish}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// The flush is an independent deferred task. It takes the same store
	// boundary when it fires, so it cannot race concurrent sends to the
	// channel. The flushed message is authored by the starter, whose
	// permission was checked above; no re-validation at flush time.
	s.sched.After(time.Duration(length)*time.Second, func() {
		_ = s.store.Update(func(st *store.State) error {
			ch, ok := st.Channels[channelID]
			if !ok {
				return nil
			}
			buffer := ch.Standup.Buffer
			ch.Standup = models.Standup{}
			if buffer != "" {
				s.appendMessage(st, store.Location{ChannelID: channelID, DmID: -1}, starter, buffer)
			}
			return nil
		})
	})
	return finish, nil
}

// StandupActive reports whether a standup is running and when it ends.
func (s *Service) StandupActive(token string, channelID int) (*StandupActiveResult, error) {
	var result *StandupActiveResult
	err := s.store.View(func(st *store.State) error {
		ch, ok := st.Channels[channelID]
		if !ok {
			return errs.Input("invalid channel id")
		}
		if _, err := s.resolveToken(st, token); err != nil {
			return err
		}
		result = &StandupActiveResult{IsActive: ch.Standup.Active}
		if ch.Standup.Active {
			t := ch.Standup.TimeFinish
			result.TimeFinish = &t
		}
		return nil
	})
	return result, err
}

// StandupSend appends one line to the active standup buffer, formatted as
// "handle: line". The buffer is flushed as a single message when the
// window closes.
func (s *Service) StandupSend(token string, channelID int, message string) error {
	return s.store.Update(func(st *store.State) error {
		ch, ok := st.Channels[channelID]
		if !ok {
			return errs.Input("invalid channel id")
		}
		if l := len(message); l < 1 || l > maxMessageLen {
			return errs.Input("message must be between 1 and 1000 characters")
		}
		if !ch.Standup.Active {
			return errs.Input("no standup is active in this channel")
		}
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !st.IsChannelMember(uid, channelID) {
			return errs.Access("not a member of this channel")
		}

		line := st.Users[uid].Handle + ": " + message
		if ch.Standup.Buffer == "" {
			ch.Standup.Buffer = line
		} else {
			ch.Standup.Buffer += "\n" + line
		}
		return nil
	})
}
