package auth

import (
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewService(nil, "test-secret")

	token, err := s.issueToken("user_01h2xcejqtf2nbrexx3vqjhp41")
	if err != nil {
		t.Fatal(err)
	}

	userID, err := s.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if userID != "user_01h2xcejqtf2nbrexx3vqjhp41" {
		t.Errorf("subject = %q", userID)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService(nil, "secret-a")
	verifier := NewService(nil, "secret-b")

	token, err := issuer.issueToken("user_x")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret must not validate")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s := NewService(nil, "test-secret")

	for _, token := range []string{"", "not-a-jwt", strings.Repeat("a.", 3)} {
		if _, err := s.ValidateToken(token); err == nil {
			t.Errorf("token %q should be rejected", token)
		}
	}
}
