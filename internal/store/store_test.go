package store

import (
	"testing"

	"github.com/lumachat/luma/internal/models"
)

func testUser(email, handle string) *models.User {
	return &models.User{
		Email:  email,
		Handle: handle,
	}
}

func testChannel(name string) *models.Channel {
	return &models.Channel{Name: name, Messages: []*models.Message{}}
}

func testDM(members ...int) *models.DM {
	return &models.DM{Members: members, Messages: []*models.Message{}}
}

func TestAddUserAssignsSequentialIDs(t *testing.T) {
	st := newState()

	for i, u := range []*models.User{
		testUser("a@example.com", "a"),
		testUser("b@example.com", "b"),
		testUser("c@example.com", "c"),
	} {
		id, err := st.AddUser(u)
		if err != nil {
			t.Fatalf("AddUser failed: %v", err)
		}
		if id != i {
			t.Errorf("user id = %d, want %d", id, i)
		}
	}
}

func TestAddUserEnforcesUniqueness(t *testing.T) {
	st := newState()
	if _, err := st.AddUser(testUser("a@example.com", "a")); err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}

	tests := []struct {
		name   string
		email  string
		handle string
	}{
		{"duplicate email", "a@example.com", "other"},
		{"duplicate handle", "other@example.com", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := st.AddUser(testUser(tt.email, tt.handle)); err == nil {
				t.Error("AddUser succeeded, want error")
			}
		})
	}
}

func TestReleaseUserKeysFreesEmailAndHandle(t *testing.T) {
	st := newState()
	id, err := st.AddUser(testUser("a@example.com", "a"))
	if err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}

	st.ReleaseUserKeys(id)

	if _, ok := st.UserByEmail("a@example.com"); ok {
		t.Error("released email still resolves")
	}
	// The record itself survives the release.
	if _, ok := st.Users[id]; !ok {
		t.Error("user record gone after key release")
	}
	if _, err := st.AddUser(testUser("a@example.com", "a")); err != nil {
		t.Errorf("reusing released keys failed: %v", err)
	}
}

func TestSetEmailRekeysIndex(t *testing.T) {
	st := newState()
	id, err := st.AddUser(testUser("a@example.com", "a"))
	if err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}
	if _, err := st.AddUser(testUser("b@example.com", "b")); err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}

	if err := st.SetEmail(id, "b@example.com"); err == nil {
		t.Error("SetEmail to taken address succeeded, want error")
	}
	// Setting your own current value is not a collision.
	if err := st.SetEmail(id, "a@example.com"); err != nil {
		t.Errorf("SetEmail to own address failed: %v", err)
	}
	if err := st.SetEmail(id, "new@example.com"); err != nil {
		t.Fatalf("SetEmail failed: %v", err)
	}
	if _, ok := st.UserByEmail("a@example.com"); ok {
		t.Error("old email still resolves")
	}
	if u, ok := st.UserByEmail("new@example.com"); !ok || u.ID != id {
		t.Error("new email does not resolve")
	}
}

func TestRevokeSessions(t *testing.T) {
	st := newState()
	st.Sessions["s1"] = 0
	st.Sessions["s2"] = 0
	st.Sessions["s3"] = 1

	st.RevokeSessions(0)

	if len(st.Sessions) != 1 {
		t.Fatalf("sessions = %v, want only user 1's", st.Sessions)
	}
	if st.Sessions["s3"] != 1 {
		t.Error("unrelated session revoked")
	}
}

func TestMessageIDsGlobalAcrossContainers(t *testing.T) {
	st := newState()
	ch := st.AddChannel(testChannel("general"))
	dm := st.AddDM(testDM(0))
	chLoc := Location{ChannelID: ch, DmID: -1}
	dmLoc := Location{ChannelID: -1, DmID: dm}

	id0 := st.AppendMessage(chLoc, &models.Message{Body: "one"})
	id1 := st.AppendMessage(dmLoc, &models.Message{Body: "two"})
	id2 := st.AppendMessage(chLoc, &models.Message{Body: "three"})
	if id0 != 0 || id1 != 1 || id2 != 2 {
		t.Fatalf("ids = %d, %d, %d, want 0, 1, 2", id0, id1, id2)
	}

	if loc, ok := st.LocateMessage(id1); !ok || loc != dmLoc {
		t.Errorf("LocateMessage(%d) = %v, %v; want %v in dm", id1, loc, ok, dmLoc)
	}
	m, loc, ok := st.MessageByID(id2)
	if !ok || loc != chLoc || m.Body != "three" {
		t.Errorf("MessageByID(%d) = %+v, %v, %v", id2, m, loc, ok)
	}
}

func TestDeleteMessageClearsLocator(t *testing.T) {
	st := newState()
	ch := st.AddChannel(testChannel("general"))
	loc := Location{ChannelID: ch, DmID: -1}
	id0 := st.AppendMessage(loc, &models.Message{Body: "keep"})
	id1 := st.AppendMessage(loc, &models.Message{Body: "drop"})

	if !st.DeleteMessage(id1) {
		t.Fatal("DeleteMessage reported nothing deleted")
	}
	if _, ok := st.LocateMessage(id1); ok {
		t.Error("deleted message still locatable")
	}
	if st.DeleteMessage(id1) {
		t.Error("second delete reported success")
	}
	if msgs := st.Channels[ch].Messages; len(msgs) != 1 || msgs[0].ID != id0 {
		t.Errorf("channel messages = %+v, want only id %d", msgs, id0)
	}

	// The counter never rewinds.
	if id := st.AppendMessage(loc, &models.Message{Body: "next"}); id != 2 {
		t.Errorf("id after delete = %d, want 2", id)
	}
}

func TestRemoveDM(t *testing.T) {
	st := newState()
	if _, err := st.AddUser(testUser("a@example.com", "a")); err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}
	dm := st.AddDM(testDM(0))
	st.Users[0].DMs = []int{dm}
	loc := Location{ChannelID: -1, DmID: dm}
	id := st.AppendMessage(loc, &models.Message{Body: "hi"})

	st.RemoveDM(dm)

	if _, ok := st.DMs[dm]; ok {
		t.Error("dm still present")
	}
	if _, ok := st.LocateMessage(id); ok {
		t.Error("dm message still locatable")
	}
	if len(st.Users[0].DMs) != 0 {
		t.Errorf("member still lists dm: %v", st.Users[0].DMs)
	}
	// Removing again is a no-op.
	st.RemoveDM(dm)
}

func TestClearResetsCounters(t *testing.T) {
	s := New()
	err := s.Update(func(st *State) error {
		if _, err := st.AddUser(testUser("a@example.com", "a")); err != nil {
			return err
		}
		ch := st.AddChannel(testChannel("general"))
		st.AppendMessage(Location{ChannelID: ch, DmID: -1}, &models.Message{Body: "hi"})
		return nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	s.Clear()

	err = s.View(func(st *State) error {
		if len(st.Users) != 0 || len(st.Channels) != 0 || len(st.Sessions) != 0 {
			t.Errorf("state not empty after clear")
		}
		if st.NextUserID != 0 || st.NextChannelID != 0 || st.NextMessageID != 0 {
			t.Errorf("counters not reset: %d %d %d", st.NextUserID, st.NextChannelID, st.NextMessageID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
}

func TestSortedIDListings(t *testing.T) {
	st := newState()
	for _, h := range []string{"a", "b", "c"} {
		if _, err := st.AddUser(testUser(h+"@example.com", h)); err != nil {
			t.Fatalf("AddUser failed: %v", err)
		}
	}
	st.AddChannel(testChannel("one"))
	st.AddChannel(testChannel("two"))

	if got := st.UserIDs(); len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("UserIDs = %v", got)
	}
	if got := st.ChannelIDs(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("ChannelIDs = %v", got)
	}
}
