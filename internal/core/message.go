package core

import (
	"time"

	"github.com/lumachat/luma/internal/errs"
	"github.com/lumachat/luma/internal/models"
	"github.com/lumachat/luma/internal/store"
)

const maxMessageLen = 1000

// Send posts a message to a channel and returns the new global message
// id. Checks run in the pinned order: token, body, channel existence,
// membership.
func (s *Service) Send(token string, channelID int, body string) (int, error) {
	var id int
	err := s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if err := validateChannelSend(st, uid, channelID, body); err != nil {
			return err
		}
		id = s.appendMessage(st, store.Location{ChannelID: channelID, DmID: -1}, uid, body)
		return nil
	})
	return id, err
}

// SendDM posts a message to a DM. Symmetric with Send.
func (s *Service) SendDM(token string, dmID int, body string) (int, error) {
	var id int
	err := s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if err := validateDmSend(st, uid, dmID, body); err != nil {
			return err
		}
		id = s.appendMessage(st, store.Location{ChannelID: -1, DmID: dmID}, uid, body)
		return nil
	})
	return id, err
}

// Edit overwrites a message's body in place. An empty body is defined to
// be a removal, with removal's own permission checks. Editing re-runs the
// mention fan-out on the new body.
func (s *Service) Edit(token string, messageID int, body string) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if len(body) > maxMessageLen {
			return errs.Input("message must be at most 1000 characters")
		}
		if len(body) == 0 {
			return removeMessage(st, uid, messageID)
		}
		m, loc, ok := st.MessageByID(messageID)
		if !ok {
			return errs.Input("invalid message id")
		}
		if !canAlter(st, uid, m, loc) {
			return errs.Access("no permission to edit this message")
		}
		m.Body = body
		notifyTagged(st, body, uid, loc)
		return nil
	})
}

// Remove deletes a message from its container. Permission is the same as
// edit: the author, or an owner of the containing channel, or the creator
// of the containing DM.
func (s *Service) Remove(token string, messageID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		return removeMessage(st, uid, messageID)
	})
}

// Share reposts an existing message into another container, with an
// optional extra body on top. The caller must be a member of both the
// source and the target container; every membership check fails
// independently with AccessError.
func (s *Service) Share(token string, ogMessageID int, message string, channelID, dmID int) (int, error) {
	var id int
	err := s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		og, ogLoc, ok := st.MessageByID(ogMessageID)
		if !ok {
			return errs.Input("invalid message id")
		}
		if !st.CanInteract(uid, ogLoc) {
			return errs.Access("not a member of the source conversation")
		}
		if channelID != -1 && dmID != -1 {
			return errs.Input("exactly one of channel_id and dm_id must be -1")
		}
		target := store.Location{ChannelID: channelID, DmID: dmID}
		if !st.CanInteract(uid, target) {
			return errs.Access("not a member of the target conversation")
		}

		composed := message + "\n\n\"\"\"\n" + og.Body + "\n\"\"\""
		if len(composed) > maxMessageLen {
			return errs.Input("shared message must be at most 1000 characters")
		}
		id = s.appendMessage(st, target, uid, composed)
		return nil
	})
	return id, err
}

// SendLater posts to a channel once timeSent is reached. Validation is
// eager (a bad request fails before any waiting) and a timeSent in the
// past is rejected outright. The send itself runs as a scheduled task;
// the call waits on the task so the caller observes the send having
// happened, with the id allocated at fire time.
func (s *Service) SendLater(token string, channelID int, body string, timeSent int64) (int, error) {
	var uid int
	err := s.store.View(func(st *store.State) error {
		var err error
		uid, err = s.resolveToken(st, token)
		if err != nil {
			return err
		}
		return validateChannelSend(st, uid, channelID, body)
	})
	if err != nil {
		return 0, err
	}
	delay := time.Duration(timeSent-s.now().Unix()) * time.Second
	if delay < 0 {
		return 0, errs.Input("time sent is in the past")
	}

	var id int
	task := s.sched.After(delay, func() {
		// Channels are never deleted, so the fire cannot miss its target.
		_ = s.store.Update(func(st *store.State) error {
			id = s.appendMessage(st, store.Location{ChannelID: channelID, DmID: -1}, uid, body)
			return nil
		})
	})
	<-task.Done
	return id, nil
}

// SendLaterDM is SendLater for DMs. Unlike channels, a DM can be removed
// while the send is pending; the pending send then fails.
func (s *Service) SendLaterDM(token string, dmID int, body string, timeSent int64) (int, error) {
	var uid int
	err := s.store.View(func(st *store.State) error {
		var err error
		uid, err = s.resolveToken(st, token)
		if err != nil {
			return err
		}
		return validateDmSend(st, uid, dmID, body)
	})
	if err != nil {
		return 0, err
	}
	delay := time.Duration(timeSent-s.now().Unix()) * time.Second
	if delay < 0 {
		return 0, errs.Input("time sent is in the past")
	}

	var id int
	var fireErr error
	task := s.sched.After(delay, func() {
		fireErr = s.store.Update(func(st *store.State) error {
			if _, ok := st.DMs[dmID]; !ok {
				return errs.Input("dm no longer exists")
			}
			id = s.appendMessage(st, store.Location{ChannelID: -1, DmID: dmID}, uid, body)
			return nil
		})
	})
	<-task.Done
	if fireErr != nil {
		return 0, fireErr
	}
	return id, nil
}

// React adds one reaction of the given kind by the caller. Reacting twice
// with the same kind is an error, not idempotent.
func (s *Service) React(token string, messageID, reactID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		m, loc, ok := st.MessageByID(messageID)
		if !ok {
			return errs.Input("invalid message id")
		}
		if !models.ValidReactIDs[reactID] {
			return errs.Input("invalid react id")
		}
		if !st.CanInteract(uid, loc) {
			return errs.Access("not a member of this conversation")
		}
		for _, r := range m.Reacts {
			if r.ReactID == reactID && r.UserID == uid {
				return errs.Input("already reacted with this react")
			}
		}
		m.Reacts = append(m.Reacts, models.Reaction{ReactID: reactID, UserID: uid})
		notifyReacted(st, uid, m.Author, loc)
		return nil
	})
}

// Unreact removes the caller's reaction of the given kind; failing if it
// does not exist.
func (s *Service) Unreact(token string, messageID, reactID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		m, loc, ok := st.MessageByID(messageID)
		if !ok {
			return errs.Input("invalid message id")
		}
		if !models.ValidReactIDs[reactID] {
			return errs.Input("invalid react id")
		}
		if !st.CanInteract(uid, loc) {
			return errs.Access("not a member of this conversation")
		}
		for i, r := range m.Reacts {
			if r.ReactID == reactID && r.UserID == uid {
				m.Reacts = append(m.Reacts[:i], m.Reacts[i+1:]...)
				return nil
			}
		}
		return errs.Input("has not reacted with this react")
	})
}

// Pin snapshots a message into its container's pinned list. Permission is
// container ownership; plain membership is not enough, unlike react.
func (s *Service) Pin(token string, messageID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		m, loc, ok := st.MessageByID(messageID)
		if !ok {
			return errs.Input("invalid message id")
		}
		if !st.CanModerate(uid, loc) {
			return errs.Access("no owner permission in this conversation")
		}
		for _, p := range pinnedList(st, loc) {
			if p.MessageID == messageID {
				return errs.Input("message is already pinned")
			}
		}
		setPinnedList(st, loc, append(pinnedList(st, loc), models.PinnedMessage{
			MessageID: messageID,
			PinnedBy:  uid,
			Body:      m.Body,
		}))
		m.IsPinned = true
		return nil
	})
}

// Unpin removes a message from its container's pinned list.
func (s *Service) Unpin(token string, messageID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		m, loc, ok := st.MessageByID(messageID)
		if !ok {
			return errs.Input("invalid message id")
		}
		if !st.CanModerate(uid, loc) {
			return errs.Access("no owner permission in this conversation")
		}
		pins := pinnedList(st, loc)
		for i, p := range pins {
			if p.MessageID == messageID {
				setPinnedList(st, loc, append(pins[:i], pins[i+1:]...))
				m.IsPinned = false
				return nil
			}
		}
		return errs.Input("message is not pinned")
	})
}

// ---------------------------------------------------------------
// Shared internals
// ---------------------------------------------------------------

// appendMessage creates a message at the next global id, appends it, and
// runs the mention fan-out.
func (s *Service) appendMessage(st *store.State, loc store.Location, authorID int, body string) int {
	m := &models.Message{
		Author:      authorID,
		Body:        body,
		TimeCreated: s.now().Unix(),
		Reacts:      []models.Reaction{},
	}
	id := st.AppendMessage(loc, m)
	notifyTagged(st, body, authorID, loc)
	return id
}

func removeMessage(st *store.State, uid, messageID int) error {
	m, loc, ok := st.MessageByID(messageID)
	if !ok {
		return errs.Input("invalid message id")
	}
	if !canAlter(st, uid, m, loc) {
		return errs.Access("no permission to remove this message")
	}
	st.DeleteMessage(messageID)
	return nil
}

// canAlter is the edit/remove permission: a member of the container who
// either authored the message or holds owner-level permission over the
// container.
func canAlter(st *store.State, uid int, m *models.Message, loc store.Location) bool {
	if !st.CanInteract(uid, loc) {
		return false
	}
	return m.Author == uid || st.CanModerate(uid, loc)
}

func validateChannelSend(st *store.State, uid, channelID int, body string) error {
	if l := len(body); l == 0 || l > maxMessageLen {
		return errs.Input("message must be between 1 and 1000 characters")
	}
	if _, ok := st.Channels[channelID]; !ok {
		return errs.Input("invalid channel id")
	}
	if !st.IsChannelMember(uid, channelID) {
		return errs.Access("not a member of this channel")
	}
	return nil
}

func validateDmSend(st *store.State, uid, dmID int, body string) error {
	if l := len(body); l == 0 || l > maxMessageLen {
		return errs.Input("message must be between 1 and 1000 characters")
	}
	if _, ok := st.DMs[dmID]; !ok {
		return errs.Input("invalid dm id")
	}
	if !st.IsDmMember(uid, dmID) {
		return errs.Access("not a member of this dm")
	}
	return nil
}

func pinnedList(st *store.State, loc store.Location) []models.PinnedMessage {
	if loc.InChannel() {
		return st.Channels[loc.ChannelID].Pinned
	}
	return st.DMs[loc.DmID].Pinned
}

func setPinnedList(st *store.State, loc store.Location, pins []models.PinnedMessage) {
	if loc.InChannel() {
		st.Channels[loc.ChannelID].Pinned = pins
	} else {
		st.DMs[loc.DmID].Pinned = pins
	}
}
