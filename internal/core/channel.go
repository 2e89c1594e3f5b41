package core

import (
	"github.com/lumachat/luma/internal/errs"
	"github.com/lumachat/luma/internal/models"
	"github.com/lumachat/luma/internal/store"
)

// ChannelSummary is the wire shape of one channel in a listing.
type ChannelSummary struct {
	ChannelID int    `json:"channel_id"`
	Name      string `json:"name"`
}

// ChannelDetails is the wire shape of channel/details.
type ChannelDetails struct {
	Name         string           `json:"name"`
	IsPublic     bool             `json:"is_public"`
	OwnerMembers []models.Profile `json:"owner_members"`
	AllMembers   []models.Profile `json:"all_members"`
}

// ChannelsCreate makes a channel; the creator becomes its first owner and
// member. Channel ids count up from 0 and are never reused.
func (s *Service) ChannelsCreate(token, name string, isPublic bool) (int, error) {
	var id int
	err := s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if l := len(name); l < 1 || l > 20 {
			return errs.Input("channel name must be between 1 and 20 characters")
		}
		ch := &models.Channel{
			Name:     name,
			IsPublic: isPublic,
			Owners:   []int{uid},
			Members:  []int{uid},
			Messages: []*models.Message{},
			Pinned:   []models.PinnedMessage{},
		}
		id = st.AddChannel(ch)
		st.Users[uid].Channels = append(st.Users[uid].Channels, id)
		return nil
	})
	return id, err
}

// ChannelsList returns the channels the caller is a member of.
func (s *Service) ChannelsList(token string) ([]ChannelSummary, error) {
	out := []ChannelSummary{}
	err := s.store.View(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		for _, id := range st.ChannelIDs() {
			if st.IsChannelMember(uid, id) {
				out = append(out, ChannelSummary{ChannelID: id, Name: st.Channels[id].Name})
			}
		}
		return nil
	})
	return out, err
}

// ChannelsListAll returns every channel, public or private.
func (s *Service) ChannelsListAll(token string) ([]ChannelSummary, error) {
	out := []ChannelSummary{}
	err := s.store.View(func(st *store.State) error {
		if _, err := s.resolveToken(st, token); err != nil {
			return err
		}
		for _, id := range st.ChannelIDs() {
			out = append(out, ChannelSummary{ChannelID: id, Name: st.Channels[id].Name})
		}
		return nil
	})
	return out, err
}

// ChannelDetails returns a channel's name and rosters. Members only.
func (s *Service) ChannelDetails(token string, channelID int) (*ChannelDetails, error) {
	var details *ChannelDetails
	err := s.store.View(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		ch, ok := st.Channels[channelID]
		if !ok {
			return errs.Input("invalid channel id")
		}
		if !st.IsChannelMember(uid, channelID) {
			return errs.Access("not a member of this channel")
		}
		details = &ChannelDetails{
			Name:         ch.Name,
			IsPublic:     ch.IsPublic,
			OwnerMembers: profilesOf(st, ch.Owners),
			AllMembers:   profilesOf(st, ch.Members),
		}
		return nil
	})
	return details, err
}

// ChannelJoin adds the caller to a channel. Private channels admit only
// global owners this way; everyone else needs an invite.
func (s *Service) ChannelJoin(token string, channelID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		ch, ok := st.Channels[channelID]
		if !ok {
			return errs.Input("invalid channel id")
		}
		if !ch.IsPublic && !st.IsGlobalOwner(uid) {
			return errs.Access("channel is private")
		}
		addChannelMember(st, ch, uid)
		return nil
	})
}

// ChannelInvite adds another user to a channel the caller is in, and
// notifies them.
func (s *Service) ChannelInvite(token string, channelID, uID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		ch, ok := st.Channels[channelID]
		if !ok {
			return errs.Input("invalid channel id")
		}
		target, ok := st.Users[uID]
		if !ok || target.Removed {
			return errs.Input("invalid user id")
		}
		if !st.IsChannelMember(uid, channelID) {
			return errs.Access("not a member of this channel")
		}
		if st.IsChannelMember(uID, channelID) {
			return nil
		}
		addChannelMember(st, ch, uID)
		notifyAdded(st, uid, uID, store.Location{ChannelID: channelID, DmID: -1})
		return nil
	})
}

// ChannelLeave removes the caller from a channel's member and owner
// lists. A channel can be left ownerless; it is never deleted.
func (s *Service) ChannelLeave(token string, channelID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		ch, ok := st.Channels[channelID]
		if !ok {
			return errs.Input("invalid channel id")
		}
		if !st.IsChannelMember(uid, channelID) {
			return errs.Access("not a member of this channel")
		}
		ch.Members = filterID(ch.Members, uid)
		ch.Owners = filterID(ch.Owners, uid)
		st.Users[uid].Channels = filterID(st.Users[uid].Channels, channelID)
		return nil
	})
}

// ChannelAddOwner promotes a user to channel owner. The caller must hold
// owner permission (explicit owner or global owner). A non-member target
// is added as a member as part of the promotion.
func (s *Service) ChannelAddOwner(token string, channelID, uID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		ch, ok := st.Channels[channelID]
		if !ok {
			return errs.Input("invalid channel id")
		}
		target, ok := st.Users[uID]
		if !ok || target.Removed {
			return errs.Input("invalid user id")
		}
		if containsID(ch.Owners, uID) {
			return errs.Input("user is already an owner")
		}
		if !st.IsChannelOwner(uid, channelID) {
			return errs.Access("no owner permission in this channel")
		}
		addChannelMember(st, ch, uID)
		ch.Owners = append(ch.Owners, uID)
		return nil
	})
}

// ChannelRemoveOwner demotes a channel owner. The last owner cannot be
// demoted.
func (s *Service) ChannelRemoveOwner(token string, channelID, uID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		ch, ok := st.Channels[channelID]
		if !ok {
			return errs.Input("invalid channel id")
		}
		if _, ok := st.Users[uID]; !ok {
			return errs.Input("invalid user id")
		}
		if !containsID(ch.Owners, uID) {
			return errs.Input("user is not an owner")
		}
		if len(ch.Owners) == 1 {
			return errs.Input("cannot demote the only owner")
		}
		if !st.IsChannelOwner(uid, channelID) {
			return errs.Access("no owner permission in this channel")
		}
		ch.Owners = filterID(ch.Owners, uID)
		return nil
	})
}

// ChannelMessages pages through a channel's messages, newest first.
func (s *Service) ChannelMessages(token string, channelID, start int) (*MessagePage, error) {
	var page *MessagePage
	err := s.store.View(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		ch, ok := st.Channels[channelID]
		if !ok {
			return errs.Input("invalid channel id")
		}
		if !st.IsChannelMember(uid, channelID) {
			return errs.Access("not a member of this channel")
		}
		page, err = paginateMessages(ch.Messages, start, uid)
		return err
	})
	return page, err
}

// ---------------------------------------------------------------
// Helpers shared with dm.go
// ---------------------------------------------------------------

func addChannelMember(st *store.State, ch *models.Channel, uid int) {
	if containsID(ch.Members, uid) {
		return
	}
	ch.Members = append(ch.Members, uid)
	st.Users[uid].Channels = append(st.Users[uid].Channels, ch.ID)
}

func profilesOf(st *store.State, ids []int) []models.Profile {
	out := make([]models.Profile, 0, len(ids))
	for _, id := range ids {
		if u, ok := st.Users[id]; ok {
			out = append(out, profileOf(u))
		}
	}
	return out
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func filterID(ids []int, id int) []int {
	out := make([]int, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
