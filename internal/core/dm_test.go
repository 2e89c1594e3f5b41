package core

import (
	"testing"

	"github.com/lumachat/luma/internal/errs"
)

func TestDMCreateNaming(t *testing.T) {
	s, _ := newTestService(t)
	ada := mustRegister(t, s, "a@example.com", "Ada", "Lovelace")
	bob := mustRegister(t, s, "b@example.com", "Bob", "Byrne")
	zed := mustRegister(t, s, "z@example.com", "Zed", "Aardvark")

	tests := []struct {
		name     string
		token    string
		uIDs     []int
		wantName string
	}{
		{"solo dm", ada.Token, nil, "adalovelace"},
		// Handles sorted alphabetically regardless of who created it.
		{"pair", bob.Token, []int{ada.AuthUserID}, "adalovelace, bobbyrne"},
		{"trio", zed.Token, []int{bob.AuthUserID, ada.AuthUserID}, "adalovelace, bobbyrne, zedaardvark"},
		// The creator listed among the invitees is deduplicated.
		{"creator in list", ada.Token, []int{ada.AuthUserID, bob.AuthUserID}, "adalovelace, bobbyrne"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.DMCreate(tt.token, tt.uIDs)
			if err != nil {
				t.Fatalf("DMCreate failed: %v", err)
			}
			if result.DmName != tt.wantName {
				t.Errorf("DmName = %q, want %q", result.DmName, tt.wantName)
			}
		})
	}
}

func TestDMCreateErrors(t *testing.T) {
	s, _ := newTestService(t)
	a := mustRegister(t, s, "a@example.com", "Ada", "Lovelace")

	if _, err := s.DMCreate(a.Token, []int{999}); !errs.IsInput(err) {
		t.Errorf("DMCreate with unknown user = %v, want InputError", err)
	}
	if _, err := s.DMCreate("garbage", nil); !errs.IsAccess(err) {
		t.Errorf("DMCreate with bad token = %v, want AccessError", err)
	}
}

func TestDMCreateNotifiesInvitees(t *testing.T) {
	s, _ := newTestService(t)
	a := mustRegister(t, s, "a@example.com", "Ada", "Lovelace")
	b := mustRegister(t, s, "b@example.com", "Bob", "Byrne")

	if _, err := s.DMCreate(a.Token, []int{b.AuthUserID}); err != nil {
		t.Fatalf("DMCreate failed: %v", err)
	}

	// The invitee is notified; the creator is not.
	notes, err := s.Notifications(b.Token)
	if err != nil {
		t.Fatalf("Notifications failed: %v", err)
	}
	if len(notes) != 1 || notes[0].Message != "adalovelace added you to adalovelace, bobbyrne" {
		t.Errorf("invitee notifications = %+v", notes)
	}
	notes, err = s.Notifications(a.Token)
	if err != nil {
		t.Fatalf("Notifications failed: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("creator notifications = %+v, want none", notes)
	}
}

func TestDMListAndDetails(t *testing.T) {
	s, _ := newTestService(t)
	a := mustRegister(t, s, "a@example.com", "Ada", "Lovelace")
	b := mustRegister(t, s, "b@example.com", "Bob", "Byrne")
	c := mustRegister(t, s, "c@example.com", "Cat", "Chan")
	dm, err := s.DMCreate(a.Token, []int{b.AuthUserID})
	if err != nil {
		t.Fatalf("DMCreate failed: %v", err)
	}

	list, err := s.DMList(b.Token)
	if err != nil {
		t.Fatalf("DMList failed: %v", err)
	}
	if len(list) != 1 || list[0].DmID != dm.DmID || list[0].Name != dm.DmName {
		t.Errorf("DMList = %+v", list)
	}
	list, err = s.DMList(c.Token)
	if err != nil {
		t.Fatalf("DMList failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("non-member DMList = %+v, want empty", list)
	}

	details, err := s.DMDetails(a.Token, dm.DmID)
	if err != nil {
		t.Fatalf("DMDetails failed: %v", err)
	}
	if details.Name != dm.DmName || len(details.Members) != 2 {
		t.Errorf("DMDetails = %+v", details)
	}
	if _, err := s.DMDetails(c.Token, dm.DmID); !errs.IsAccess(err) {
		t.Errorf("details by non-member = %v, want AccessError", err)
	}
	if _, err := s.DMDetails(a.Token, 999); !errs.IsInput(err) {
		t.Errorf("details of unknown dm = %v, want InputError", err)
	}
}

func TestDMInviteKeepsName(t *testing.T) {
	s, _ := newTestService(t)
	a := mustRegister(t, s, "a@example.com", "Ada", "Lovelace")
	b := mustRegister(t, s, "b@example.com", "Bob", "Byrne")
	dm, err := s.DMCreate(a.Token, nil)
	if err != nil {
		t.Fatalf("DMCreate failed: %v", err)
	}

	if err := s.DMInvite(b.Token, dm.DmID, b.AuthUserID); !errs.IsAccess(err) {
		t.Errorf("invite by non-member = %v, want AccessError", err)
	}
	if err := s.DMInvite(a.Token, dm.DmID, b.AuthUserID); err != nil {
		t.Fatalf("DMInvite failed: %v", err)
	}

	// The name was fixed at creation and does not grow with invitees.
	details, err := s.DMDetails(b.Token, dm.DmID)
	if err != nil {
		t.Fatalf("DMDetails failed: %v", err)
	}
	if details.Name != "adalovelace" {
		t.Errorf("name after invite = %q, want %q", details.Name, "adalovelace")
	}
	if len(details.Members) != 2 {
		t.Errorf("members = %+v, want 2", details.Members)
	}
}

func TestDMLeave(t *testing.T) {
	s, _ := newTestService(t)
	a := mustRegister(t, s, "a@example.com", "Ada", "Lovelace")
	b := mustRegister(t, s, "b@example.com", "Bob", "Byrne")
	dm, err := s.DMCreate(a.Token, []int{b.AuthUserID})
	if err != nil {
		t.Fatalf("DMCreate failed: %v", err)
	}

	// Even the creator may leave; the DM survives.
	if err := s.DMLeave(a.Token, dm.DmID); err != nil {
		t.Fatalf("DMLeave failed: %v", err)
	}
	if err := s.DMLeave(a.Token, dm.DmID); !errs.IsAccess(err) {
		t.Errorf("leave twice = %v, want AccessError", err)
	}

	details, err := s.DMDetails(b.Token, dm.DmID)
	if err != nil {
		t.Fatalf("DMDetails failed: %v", err)
	}
	if len(details.Members) != 1 || details.Members[0].UID != b.AuthUserID {
		t.Errorf("members after leave = %+v", details.Members)
	}
}

func TestDMRemoveCreatorOnly(t *testing.T) {
	s, _ := newTestService(t)
	a := mustRegister(t, s, "a@example.com", "Ada", "Lovelace")
	b := mustRegister(t, s, "b@example.com", "Bob", "Byrne")
	dm, err := s.DMCreate(a.Token, []int{b.AuthUserID})
	if err != nil {
		t.Fatalf("DMCreate failed: %v", err)
	}

	if err := s.DMRemove(b.Token, dm.DmID); !errs.IsAccess(err) {
		t.Errorf("remove by plain member = %v, want AccessError", err)
	}
	if err := s.DMRemove(a.Token, 999); !errs.IsInput(err) {
		t.Errorf("remove unknown dm = %v, want InputError", err)
	}
	if err := s.DMRemove(a.Token, dm.DmID); err != nil {
		t.Fatalf("DMRemove failed: %v", err)
	}

	// Gone for everyone.
	if _, err := s.DMDetails(a.Token, dm.DmID); !errs.IsInput(err) {
		t.Errorf("details of removed dm = %v, want InputError", err)
	}
	list, err := s.DMList(b.Token)
	if err != nil {
		t.Fatalf("DMList failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("member still lists removed dm: %+v", list)
	}
}

func TestDMMessages(t *testing.T) {
	s, _ := newTestService(t)
	a := mustRegister(t, s, "a@example.com", "Ada", "Lovelace")
	b := mustRegister(t, s, "b@example.com", "Bob", "Byrne")
	dm, err := s.DMCreate(a.Token, nil)
	if err != nil {
		t.Fatalf("DMCreate failed: %v", err)
	}

	first, err := s.SendDM(a.Token, dm.DmID, "one")
	if err != nil {
		t.Fatalf("SendDM failed: %v", err)
	}
	second, err := s.SendDM(a.Token, dm.DmID, "two")
	if err != nil {
		t.Fatalf("SendDM failed: %v", err)
	}

	page, err := s.DMMessages(a.Token, dm.DmID, 0)
	if err != nil {
		t.Fatalf("DMMessages failed: %v", err)
	}
	if len(page.Messages) != 2 || page.End != -1 {
		t.Fatalf("page = %+v", page)
	}
	if page.Messages[0].MessageID != second || page.Messages[1].MessageID != first {
		t.Errorf("order = %d, %d; want newest first", page.Messages[0].MessageID, page.Messages[1].MessageID)
	}

	if _, err := s.DMMessages(b.Token, dm.DmID, 0); !errs.IsAccess(err) {
		t.Errorf("messages by non-member = %v, want AccessError", err)
	}
	if _, err := s.DMMessages(a.Token, dm.DmID, 3); !errs.IsInput(err) {
		t.Errorf("start past end = %v, want InputError", err)
	}
}
