package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
)

func TestIssueAndParseToken(t *testing.T) {
	is := is.New(t)

	token := IssueToken("member-1", "owner-1", "veterinario")
	is.True(token != "")

	authInfo, err := ParseToken(token)
	is.NoErr(err)
	is.Equal(authInfo.MemberID, "member-1")
	is.Equal(authInfo.TenantID, "owner-1")
	is.Equal(authInfo.Role, "veterinario")
}

func TestParseTokenRejectsTampered(t *testing.T) {
	token := IssueToken("member-1", "owner-1", "empleado")
	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseToken(tampered); err == nil {
		t.Error("Expected error for tampered token")
	}
}

func TestIssueTokenPanicsOnEmptyMemberID(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on empty memberID")
		}
	}()
	IssueToken("", "owner-1", "empleado")
}

func TestAuthenticate(t *testing.T) {
	is := is.New(t)

	token := IssueToken("member-2", "owner-1", "empleado")

	r := httptest.NewRequest(http.MethodGet, "/api4invites/invites", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	authInfo, err := Authenticate(w, r, true)
	is.NoErr(err)
	is.Equal(authInfo.MemberID, "member-2")
}

func TestAuthenticateNoToken(t *testing.T) {
	is := is.New(t)

	r := httptest.NewRequest(http.MethodGet, "/api4invites/invites", nil)
	w := httptest.NewRecorder()

	_, err := Authenticate(w, r, true)
	is.Equal(err, ErrNoToken)
	is.Equal(w.Code, http.StatusUnauthorized)

	w = httptest.NewRecorder()
	_, err = Authenticate(w, r, false)
	is.Equal(err, ErrNoToken)
	is.Equal(w.Code, http.StatusOK) // optional auth must not write an error status
}
