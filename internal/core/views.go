package core

import (
	"github.com/lumachat/luma/internal/errs"
	"github.com/lumachat/luma/internal/models"
	"github.com/lumachat/luma/internal/store"
)

// ReactView groups a message's reactions of one kind, with the per-caller
// flag the frontend needs. Every valid react kind gets a group, empty or
// not, so the client never has to special-case a missing kind.
type ReactView struct {
	ReactID           int   `json:"react_id"`
	UIDs              []int `json:"u_ids"`
	IsThisUserReacted bool  `json:"is_this_user_reacted"`
}

// MessageView is the wire shape of one message.
type MessageView struct {
	MessageID   int         `json:"message_id"`
	UID         int         `json:"u_id"`
	Message     string      `json:"message"`
	TimeCreated int64       `json:"time_created"`
	Reacts      []ReactView `json:"reacts"`
	IsPinned    bool        `json:"is_pinned"`
}

// MessagePage is the paginated shape channel/messages and dm/messages
// return.
type MessagePage struct {
	Messages []MessageView `json:"messages"`
	Start    int           `json:"start"`
	End      int           `json:"end"`
}

const messagePageSize = 50

// messageView renders one message for a particular caller.
func messageView(m *models.Message, viewer int) MessageView {
	reacts := make([]ReactView, 0, len(models.ValidReactIDs))
	for reactID := range models.ValidReactIDs {
		rv := ReactView{ReactID: reactID, UIDs: []int{}}
		for _, r := range m.Reacts {
			if r.ReactID != reactID {
				continue
			}
			rv.UIDs = append(rv.UIDs, r.UserID)
			if r.UserID == viewer {
				rv.IsThisUserReacted = true
			}
		}
		reacts = append(reacts, rv)
	}
	return MessageView{
		MessageID:   m.ID,
		UID:         m.Author,
		Message:     m.Body,
		TimeCreated: m.TimeCreated,
		Reacts:      reacts,
		IsPinned:    m.IsPinned,
	}
}

// paginateMessages walks a container's messages newest-first from the
// given start index and returns one page. End is start+50, or -1 once the
// oldest message has been paged out.
func paginateMessages(msgs []*models.Message, start, viewer int) (*MessagePage, error) {
	if start < 0 || start > len(msgs) {
		return nil, errs.Input("start must be between 0 and the number of messages")
	}
	page := &MessagePage{Messages: []MessageView{}, Start: start, End: start + messagePageSize}
	for i := 0; i < messagePageSize; i++ {
		idx := len(msgs) - 1 - start - i
		if idx < 0 {
			page.End = -1
			break
		}
		page.Messages = append(page.Messages, messageView(msgs[idx], viewer))
	}
	if start+messagePageSize >= len(msgs) {
		page.End = -1
	}
	return page, nil
}

// profileOf renders the public view of a user. Removed users keep their
// id but read as "Removed user" with freed email and handle.
func profileOf(u *models.User) models.Profile {
	return models.Profile{
		UID:       u.ID,
		Email:     u.Email,
		NameFirst: u.NameFirst,
		NameLast:  u.NameLast,
		Handle:    u.Handle,
	}
}

// containerName names the channel or DM at a location, for notification
// text.
func containerName(st *store.State, loc store.Location) string {
	if loc.InChannel() {
		if ch, ok := st.Channels[loc.ChannelID]; ok {
			return ch.Name
		}
		return ""
	}
	if d, ok := st.DMs[loc.DmID]; ok {
		return d.Name
	}
	return ""
}
