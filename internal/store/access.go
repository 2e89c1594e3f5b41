package store

import "github.com/lumachat/luma/internal/models"

// Permission predicates. Each one is a pure query over the snapshot and
// returns false, never an error, for an id that does not exist. Callers
// check existence first; keeping the two concerns apart is what lets an
// operation produce InputError for a bad id and AccessError for a denied
// permission in the required order.

// IsGlobalOwner reports whether the user holds the global owner
// permission level.
func (st *State) IsGlobalOwner(userID int) bool {
	u, ok := st.Users[userID]
	return ok && u.PermLevel == models.PermGlobalOwner
}

// IsChannelMember reports whether the user is in the channel's member
// list.
func (st *State) IsChannelMember(userID, channelID int) bool {
	ch, ok := st.Channels[channelID]
	if !ok {
		return false
	}
	return containsID(ch.Members, userID)
}

// IsChannelOwner reports whether the user may act as an owner of the
// channel: explicitly in the owner list, or a global owner.
func (st *State) IsChannelOwner(userID, channelID int) bool {
	ch, ok := st.Channels[channelID]
	if !ok {
		return false
	}
	return containsID(ch.Owners, userID) || st.IsGlobalOwner(userID)
}

// IsDmMember reports whether the user is in the DM's member list.
func (st *State) IsDmMember(userID, dmID int) bool {
	d, ok := st.DMs[dmID]
	if !ok {
		return false
	}
	return containsID(d.Members, userID)
}

// IsDmCreator reports whether the user created the DM. DM ownership is
// singular: never promotable, and global owners get no special standing.
func (st *State) IsDmCreator(userID, dmID int) bool {
	d, ok := st.DMs[dmID]
	return ok && d.Creator == userID
}

// CanModerate reports whether the user holds owner-level permission over
// the container a message lives in: channel owner for channel messages,
// DM creator for DM messages.
func (st *State) CanModerate(userID int, loc Location) bool {
	if loc.InChannel() {
		return st.IsChannelOwner(userID, loc.ChannelID)
	}
	return st.IsDmCreator(userID, loc.DmID)
}

// CanInteract reports whether the user is a member of the container a
// message lives in. Plain membership is what react/unreact require.
func (st *State) CanInteract(userID int, loc Location) bool {
	if loc.InChannel() {
		return st.IsChannelMember(userID, loc.ChannelID)
	}
	return st.IsDmMember(userID, loc.DmID)
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
