package core

import (
	"sort"
	"strings"

	"github.com/lumachat/luma/internal/errs"
	"github.com/lumachat/luma/internal/models"
	"github.com/lumachat/luma/internal/store"
)

// DMSummary is the wire shape of one DM in a listing.
type DMSummary struct {
	DmID int    `json:"dm_id"`
	Name string `json:"name"`
}

// DMCreateResult is the wire shape of dm/create.
type DMCreateResult struct {
	DmID   int    `json:"dm_id"`
	DmName string `json:"dm_name"`
}

// DMDetails is the wire shape of dm/details.
type DMDetails struct {
	Name    string           `json:"name"`
	Members []models.Profile `json:"members"`
}

// DMCreate makes a DM between the caller and the given users. The name is
// fixed at creation: every member's handle, sorted alphabetically, joined
// with ", ". With no other members it is just the creator's handle.
func (s *Service) DMCreate(token string, uIDs []int) (*DMCreateResult, error) {
	var result *DMCreateResult
	err := s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		members := []int{uid}
		for _, id := range uIDs {
			u, ok := st.Users[id]
			if !ok || u.Removed {
				return errs.Input("invalid user id")
			}
			if !containsID(members, id) {
				members = append(members, id)
			}
		}

		handles := make([]string, 0, len(members))
		for _, id := range members {
			handles = append(handles, st.Users[id].Handle)
		}
		sort.Strings(handles)

		d := &models.DM{
			Name:     strings.Join(handles, ", "),
			Creator:  uid,
			Members:  members,
			Messages: []*models.Message{},
			Pinned:   []models.PinnedMessage{},
		}
		id := st.AddDM(d)
		for _, mid := range members {
			st.Users[mid].DMs = append(st.Users[mid].DMs, id)
		}
		loc := store.Location{ChannelID: -1, DmID: id}
		for _, mid := range members {
			if mid != uid {
				notifyAdded(st, uid, mid, loc)
			}
		}
		result = &DMCreateResult{DmID: id, DmName: d.Name}
		return nil
	})
	return result, err
}

// DMList returns the DMs the caller is a member of.
func (s *Service) DMList(token string) ([]DMSummary, error) {
	out := []DMSummary{}
	err := s.store.View(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		for _, id := range st.DMIDs() {
			if st.IsDmMember(uid, id) {
				out = append(out, DMSummary{DmID: id, Name: st.DMs[id].Name})
			}
		}
		return nil
	})
	return out, err
}

// DMDetails returns a DM's name and member roster. Members only.
func (s *Service) DMDetails(token string, dmID int) (*DMDetails, error) {
	var details *DMDetails
	err := s.store.View(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		d, ok := st.DMs[dmID]
		if !ok {
			return errs.Input("invalid dm id")
		}
		if !st.IsDmMember(uid, dmID) {
			return errs.Access("not a member of this dm")
		}
		details = &DMDetails{Name: d.Name, Members: profilesOf(st, d.Members)}
		return nil
	})
	return details, err
}

// DMInvite adds a user to an existing DM. The DM's name is fixed at
// creation and does not change.
func (s *Service) DMInvite(token string, dmID, uID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		d, ok := st.DMs[dmID]
		if !ok {
			return errs.Input("invalid dm id")
		}
		target, ok := st.Users[uID]
		if !ok || target.Removed {
			return errs.Input("invalid user id")
		}
		if !st.IsDmMember(uid, dmID) {
			return errs.Access("not a member of this dm")
		}
		if st.IsDmMember(uID, dmID) {
			return nil
		}
		d.Members = append(d.Members, uID)
		st.Users[uID].DMs = append(st.Users[uID].DMs, dmID)
		notifyAdded(st, uid, uID, store.Location{ChannelID: -1, DmID: dmID})
		return nil
	})
}

// DMLeave removes the caller from a DM. The creator can leave too; the DM
// survives and dm/remove stays creator-only.
func (s *Service) DMLeave(token string, dmID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		d, ok := st.DMs[dmID]
		if !ok {
			return errs.Input("invalid dm id")
		}
		if !st.IsDmMember(uid, dmID) {
			return errs.Access("not a member of this dm")
		}
		d.Members = filterID(d.Members, uid)
		st.Users[uid].DMs = filterID(st.Users[uid].DMs, dmID)
		return nil
	})
}

// DMRemove deletes a DM entirely, messages included. Creator only; the
// one full-container delete in the system.
func (s *Service) DMRemove(token string, dmID int) error {
	return s.store.Update(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if _, ok := st.DMs[dmID]; !ok {
			return errs.Input("invalid dm id")
		}
		if !st.IsDmCreator(uid, dmID) {
			return errs.Access("only the creator can remove a dm")
		}
		st.RemoveDM(dmID)
		return nil
	})
}

// DMMessages pages through a DM's messages, newest first.
func (s *Service) DMMessages(token string, dmID, start int) (*MessagePage, error) {
	var page *MessagePage
	err := s.store.View(func(st *store.State) error {
		uid, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		d, ok := st.DMs[dmID]
		if !ok {
			return errs.Input("invalid dm id")
		}
		if !st.IsDmMember(uid, dmID) {
			return errs.Access("not a member of this dm")
		}
		page, err = paginateMessages(d.Messages, start, uid)
		return err
	})
	return page, err
}
