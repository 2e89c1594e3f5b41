package core

import (
	"strings"

	"github.com/lumachat/luma/internal/models"
	"github.com/lumachat/luma/internal/store"
)

// Notification fan-out. These run inside the sender's store transaction,
// so a notification is only ever observable together with the event that
// produced it.

// notifyTagged scans a message body for @handle mentions and notifies
// every mentioned user who is a member of the container. Each user is
// notified at most once per message, regardless of repeat mentions.
func notifyTagged(st *store.State, body string, authorID int, loc store.Location) {
	author, ok := st.Users[authorID]
	if !ok {
		return
	}
	seen := make(map[int]bool)
	for _, handle := range mentionedHandles(body) {
		uid, ok := st.HandleIndex[handle]
		if !ok || seen[uid] {
			continue
		}
		if !st.CanInteract(uid, loc) {
			continue
		}
		seen[uid] = true
		preview := body
		if len(preview) > 20 {
			preview = preview[:20]
		}
		pushNotification(st, uid, loc,
			author.Handle+" tagged you in "+containerName(st, loc)+": "+preview)
	}
}

// notifyAdded tells a user they were added to a channel or DM.
func notifyAdded(st *store.State, inviterID, targetID int, loc store.Location) {
	inviter, ok := st.Users[inviterID]
	if !ok {
		return
	}
	pushNotification(st, targetID, loc,
		inviter.Handle+" added you to "+containerName(st, loc))
}

// notifyReacted tells a message's author someone reacted to it.
func notifyReacted(st *store.State, reactorID, authorID int, loc store.Location) {
	reactor, ok := st.Users[reactorID]
	if !ok {
		return
	}
	if _, ok := st.Users[authorID]; !ok {
		return
	}
	pushNotification(st, authorID, loc,
		reactor.Handle+" reacted to your message in "+containerName(st, loc))
}

func pushNotification(st *store.State, userID int, loc store.Location, msg string) {
	u, ok := st.Users[userID]
	if !ok {
		return
	}
	u.Notifications = append(u.Notifications, models.Notification{
		ChannelID: loc.ChannelID,
		DmID:      loc.DmID,
		Message:   msg,
	})
}

// mentionedHandles extracts the candidate handles in a body: each '@'
// followed by a maximal run of lowercase alphanumerics (handles are
// stored lowercased, with possible numeric dedup suffixes).
func mentionedHandles(body string) []string {
	var handles []string
	for i := 0; i < len(body); i++ {
		if body[i] != '@' {
			continue
		}
		j := i + 1
		for j < len(body) && isHandleChar(body[j]) {
			j++
		}
		if j > i+1 {
			handles = append(handles, strings.ToLower(body[i+1:j]))
		}
		i = j - 1
	}
	return handles
}

func isHandleChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
