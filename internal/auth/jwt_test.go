package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(7, "session-abc", "secret")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ParseToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != 7 || claims.SessionID != "session-abc" {
		t.Errorf("claims = %+v, want user 7 session session-abc", claims)
	}
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	token, err := GenerateToken(7, "session-abc", "secret")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", token, "other-secret"},
		{"garbage", "not-a-token", "secret"},
		{"empty", "", "secret"},
		{"tampered", token + "x", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.token, tt.secret); err == nil {
				t.Error("ParseToken succeeded, want error")
			}
		})
	}
}

func TestTokensDifferPerSession(t *testing.T) {
	a, err := GenerateToken(7, "session-1", "secret")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	b, err := GenerateToken(7, "session-2", "secret")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if a == b {
		t.Error("distinct sessions produced identical tokens")
	}
}
