// Package models holds the domain entities. Models are dumb data carriers:
// validation lives in the core operations and storage invariants live in
// the store, never here.
package models

// Permission levels. The first registered user becomes a global owner;
// everyone after that is an ordinary member until promoted.
const (
	PermGlobalOwner = 1
	PermMember      = 2
)

// ReactThumbsUp is the only react kind in the closed set.
const ReactThumbsUp = 1

// ValidReactIDs is the closed set of react kinds.
var ValidReactIDs = map[int]bool{ReactThumbsUp: true}

// User is a registered account. Users are never hard-deleted: admin
// removal anonymizes the record but keeps the id so message attribution
// stays stable.
//
// Channels and DMs hold the ids of every container the user belongs to,
// mirroring the membership lists on the containers themselves. The store
// keeps both sides in sync.
type User struct {
	ID            int
	Email         string
	PasswordHash  string
	NameFirst     string
	NameLast      string
	Handle        string
	PermLevel     int
	Channels      []int
	DMs           []int
	Notifications []Notification
	Removed       bool
}

// Channel is a named many-member conversation container. Owners are
// always members too. Channels are never deleted.
type Channel struct {
	ID       int
	Name     string
	IsPublic bool
	Owners   []int
	Members  []int
	Messages []*Message
	Pinned   []PinnedMessage
	Standup  Standup
}

// DM is a direct-message container. Ownership is singular: only the
// creator may remove it, and creatorship is never transferred. Name is
// computed once at creation from the sorted member handles.
type DM struct {
	ID       int
	Name     string
	Creator  int
	Members  []int
	Messages []*Message
	Pinned   []PinnedMessage
}

// Message ids are drawn from one global counter shared across channels
// and DMs, so an id alone identifies its container via the store's
// locator index.
type Message struct {
	ID          int
	Author      int
	Body        string
	TimeCreated int64
	Reacts      []Reaction
	IsPinned    bool
}

// Reaction records one user's react of one kind on a message. At most
// one entry per (message, user, kind).
type Reaction struct {
	ReactID int
	UserID  int
}

// PinnedMessage is the snapshot appended to a container's pinned list.
type PinnedMessage struct {
	MessageID int
	PinnedBy  int
	Body      string
}

// Standup is the per-channel standup window. While Active, standup/send
// appends to Buffer; the deferred flush sends the buffer as one message
// and resets the struct to its zero value.
type Standup struct {
	Active     bool
	Buffer     string
	TimeFinish int64
}

// Notification is one entry in a user's notification feed. Exactly one
// of ChannelID/DmID is set; the other is -1.
type Notification struct {
	ChannelID int    `json:"channel_id"`
	DmID      int    `json:"dm_id"`
	Message   string `json:"notification_message"`
}

// Profile is the public view of a user, in the wire shape the profile
// and users/all endpoints return.
type Profile struct {
	UID       int    `json:"u_id"`
	Email     string `json:"email"`
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
	Handle    string `json:"handle_str"`
}
