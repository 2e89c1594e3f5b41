// Package store owns every piece of mutable state in the system: users,
// channels, DMs, sessions, reset codes, and the monotonic id counters.
//
// All access goes through Store.Update or Store.View, each of which is one
// acquisition of a single mutex. A core operation is therefore atomic end
// to end: it loads the snapshot, mutates it in place, and returns, with no
// partial writes observable from any other goroutine. Deferred tasks
// (delayed sends, standup flushes) take the same boundary when they fire.
package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lumachat/luma/internal/models"
)

// Location names the container a message lives in. Exactly one of the two
// ids is set; the other is -1, matching the wire sentinel.
type Location struct {
	ChannelID int
	DmID      int
}

// InChannel reports whether the location is a channel.
func (l Location) InChannel() bool { return l.DmID == -1 }

// State is the full snapshot. Core operations receive it inside an
// Update/View callback and may read or mutate it freely; they must not
// retain references past the callback.
type State struct {
	Users    map[int]*models.User
	Channels map[int]*models.Channel
	DMs      map[int]*models.DM

	// Uniqueness indexes into Users. Email and handle are each unique
	// keys among active users; both are maintained on every mutation
	// and enforced at insert time.
	EmailIndex  map[string]int
	HandleIndex map[string]int

	// Sessions maps a live session id to its user. Logout deletes
	// exactly one entry; a user may hold several at once.
	Sessions map[string]int

	// ResetCodes maps an outstanding password-reset code to its user.
	ResetCodes map[string]int

	NextUserID    int
	NextChannelID int
	NextDMID      int
	NextMessageID int

	// msgIndex maps a live message id to its container. Updated on every
	// send, cleared on every remove, so locating a message is a map
	// lookup rather than a scan of all containers.
	msgIndex map[int]Location
}

func newState() *State {
	return &State{
		Users:       make(map[int]*models.User),
		Channels:    make(map[int]*models.Channel),
		DMs:         make(map[int]*models.DM),
		EmailIndex:  make(map[string]int),
		HandleIndex: make(map[string]int),
		Sessions:    make(map[string]int),
		ResetCodes:  make(map[string]int),
		msgIndex:    make(map[int]Location),
	}
}

// Store serializes all access to one State.
type Store struct {
	mu    sync.Mutex
	state *State
}

func New() *Store {
	return &Store{state: newState()}
}

// Update runs fn against the state under the store lock. The error from
// fn is returned unchanged, so core operations can fail out of a
// transaction without special casing.
func (s *Store) Update(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// View is Update for read-only callers. Nothing enforces read-only-ness;
// the split exists so call sites document their intent.
func (s *Store) View(fn func(st *State) error) error {
	return s.Update(fn)
}

// Clear wipes everything back to empty, counters included. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = newState()
}

// ---------------------------------------------------------------
// Users
// ---------------------------------------------------------------

// AddUser inserts a user, assigns its id, and claims its email and handle
// in the uniqueness indexes. Uniqueness is enforced here, not by caller
// convention.
func (st *State) AddUser(u *models.User) (int, error) {
	if _, taken := st.EmailIndex[u.Email]; taken {
		return 0, fmt.Errorf("email %q already registered", u.Email)
	}
	if _, taken := st.HandleIndex[u.Handle]; taken {
		return 0, fmt.Errorf("handle %q already taken", u.Handle)
	}
	u.ID = st.NextUserID
	st.NextUserID++
	st.Users[u.ID] = u
	st.EmailIndex[u.Email] = u.ID
	st.HandleIndex[u.Handle] = u.ID
	return u.ID, nil
}

// UserByEmail resolves the email index.
func (st *State) UserByEmail(email string) (*models.User, bool) {
	id, ok := st.EmailIndex[email]
	if !ok {
		return nil, false
	}
	return st.Users[id], true
}

// SetEmail re-keys the email index for an existing user.
func (st *State) SetEmail(id int, email string) error {
	if owner, taken := st.EmailIndex[email]; taken && owner != id {
		return fmt.Errorf("email %q already registered", email)
	}
	u := st.Users[id]
	delete(st.EmailIndex, u.Email)
	u.Email = email
	st.EmailIndex[email] = id
	return nil
}

// SetHandle re-keys the handle index for an existing user.
func (st *State) SetHandle(id int, handle string) error {
	if owner, taken := st.HandleIndex[handle]; taken && owner != id {
		return fmt.Errorf("handle %q already taken", handle)
	}
	u := st.Users[id]
	delete(st.HandleIndex, u.Handle)
	u.Handle = handle
	st.HandleIndex[handle] = id
	return nil
}

// ReleaseUserKeys drops a user's email and handle from the uniqueness
// indexes so they become reusable. The user record itself survives;
// admin removal anonymizes rather than deletes.
func (st *State) ReleaseUserKeys(id int) {
	u := st.Users[id]
	delete(st.EmailIndex, u.Email)
	delete(st.HandleIndex, u.Handle)
}

// RevokeSessions ends every live session belonging to a user.
func (st *State) RevokeSessions(userID int) {
	for sid, uid := range st.Sessions {
		if uid == userID {
			delete(st.Sessions, sid)
		}
	}
}

// UserIDs returns all user ids in ascending order, for deterministic
// listings.
func (st *State) UserIDs() []int {
	ids := make([]int, 0, len(st.Users))
	for id := range st.Users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ---------------------------------------------------------------
// Containers
// ---------------------------------------------------------------

// AddChannel inserts a channel and assigns its id.
func (st *State) AddChannel(c *models.Channel) int {
	c.ID = st.NextChannelID
	st.NextChannelID++
	st.Channels[c.ID] = c
	return c.ID
}

// AddDM inserts a DM and assigns its id. The DM id namespace is separate
// from the channel namespace; message ids are the shared one.
func (st *State) AddDM(d *models.DM) int {
	d.ID = st.NextDMID
	st.NextDMID++
	st.DMs[d.ID] = d
	return d.ID
}

// RemoveDM deletes a DM outright: locator entries for its messages are
// cleared and every member's dm list is detached. The only full-container
// delete in the system.
func (st *State) RemoveDM(id int) {
	d, ok := st.DMs[id]
	if !ok {
		return
	}
	for _, m := range d.Messages {
		delete(st.msgIndex, m.ID)
	}
	for _, uid := range d.Members {
		if u, ok := st.Users[uid]; ok {
			u.DMs = removeID(u.DMs, id)
		}
	}
	delete(st.DMs, id)
}

// ChannelIDs returns all channel ids in ascending order.
func (st *State) ChannelIDs() []int {
	ids := make([]int, 0, len(st.Channels))
	for id := range st.Channels {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// DMIDs returns all DM ids in ascending order.
func (st *State) DMIDs() []int {
	ids := make([]int, 0, len(st.DMs))
	for id := range st.DMs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ---------------------------------------------------------------
// Messages and the locator index
// ---------------------------------------------------------------

// AppendMessage assigns the next global message id, appends the message
// to its container, and registers it in the locator index. The single
// shared counter is what makes a bare message id resolvable back to its
// container.
func (st *State) AppendMessage(loc Location, m *models.Message) int {
	m.ID = st.NextMessageID
	st.NextMessageID++
	if loc.InChannel() {
		ch := st.Channels[loc.ChannelID]
		ch.Messages = append(ch.Messages, m)
	} else {
		d := st.DMs[loc.DmID]
		d.Messages = append(d.Messages, m)
	}
	st.msgIndex[m.ID] = loc
	return m.ID
}

// LocateMessage maps a live message id to its container. Ids that were
// never issued, or whose message has since been removed, report false.
func (st *State) LocateMessage(id int) (Location, bool) {
	loc, ok := st.msgIndex[id]
	return loc, ok
}

// MessageByID returns the message and its location.
func (st *State) MessageByID(id int) (*models.Message, Location, bool) {
	loc, ok := st.msgIndex[id]
	if !ok {
		return nil, Location{}, false
	}
	for _, m := range st.containerMessages(loc) {
		if m.ID == id {
			return m, loc, true
		}
	}
	// Index said live but the container disagrees: the index is stale,
	// which would be a bug in a mutation path. Treat as not found.
	delete(st.msgIndex, id)
	return nil, Location{}, false
}

// DeleteMessage removes a message from its container's ordered list and
// clears its locator entry. Reports whether anything was deleted.
func (st *State) DeleteMessage(id int) bool {
	loc, ok := st.msgIndex[id]
	if !ok {
		return false
	}
	msgs := st.containerMessages(loc)
	for i, m := range msgs {
		if m.ID == id {
			msgs = append(msgs[:i], msgs[i+1:]...)
			break
		}
	}
	if loc.InChannel() {
		st.Channels[loc.ChannelID].Messages = msgs
	} else {
		st.DMs[loc.DmID].Messages = msgs
	}
	delete(st.msgIndex, id)
	return true
}

func (st *State) containerMessages(loc Location) []*models.Message {
	if loc.InChannel() {
		return st.Channels[loc.ChannelID].Messages
	}
	return st.DMs[loc.DmID].Messages
}

func removeID(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
