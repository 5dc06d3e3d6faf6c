package api4invites

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/matryer/is"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/facade"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal/dalmocks"
)

func setupRouter() *httprouter.Router {
	dalmocks.NewMockDB()
	router := httprouter.New()
	InitApi(router)
	return router
}

func TestHandleSignUpAsOwnerAndCreateInvite(t *testing.T) {
	router := setupRouter()
	is := is.New(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api4invites/sign-up-as-owner",
		strings.NewReader(`{"name":"Elena Estrada"}`))
	router.ServeHTTP(w, r)
	is.Equal(w.Code, http.StatusOK)
	is.Equal(w.Header().Get("Content-Type"), "application/json")

	var signUp struct {
		Token  string `json:"token"`
		Member struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"member"`
		StarterInvite InviteCodeDto `json:"starterInvite"`
	}
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &signUp))
	is.True(signUp.Token != "")
	is.Equal(signUp.Member.Role, models.RoleAdmin)
	is.True(signUp.StarterInvite.Code != "")

	// The owner's token authorizes issuing further codes.
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/api4invites/invite-create",
		strings.NewReader(`{"roleType":"veterinario","usesTotal":2}`))
	r.Header.Set("Authorization", "Bearer "+signUp.Token)
	router.ServeHTTP(w, r)
	is.Equal(w.Code, http.StatusOK)

	var created InviteCodeDto
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &created))
	is.Equal(created.RoleType, models.RoleVeterinario)
	is.Equal(created.UsesRemaining, 2)

	// And the created code checks out as valid.
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api4invites/invite-check?code="+created.Code, nil)
	router.ServeHTTP(w, r)
	is.Equal(w.Code, http.StatusOK)
}

func TestHandleCheckInviteCodeRejections(t *testing.T) {
	router := setupRouter()
	is := is.New(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api4invites/invite-check?code=NOSUCH", nil)
	router.ServeHTTP(w, r)
	is.Equal(w.Code, http.StatusNotFound)

	var body struct {
		Reason string `json:"reason"`
	}
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &body))
	is.Equal(body.Reason, "not_found")

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api4invites/invite-check", nil)
	router.ServeHTTP(w, r)
	is.Equal(w.Code, http.StatusBadRequest)
}

func TestHandleCreateInviteCodeRequiresAuth(t *testing.T) {
	router := setupRouter()
	is := is.New(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api4invites/invite-create",
		strings.NewReader(`{"roleType":"empleado","usesTotal":1}`))
	router.ServeHTTP(w, r)
	is.Equal(w.Code, http.StatusUnauthorized)
}

func TestHandleSignUpWithCode(t *testing.T) {
	router := setupRouter()
	is := is.New(t)
	c := context.Background()

	invite, err := facade.Invites.CreateInviteCode(c, facade.CreateInviteCodeRequest{
		IssuerID:  "owner-1",
		RoleType:  models.RoleEmpleado,
		UsesTotal: 1,
	})
	is.NoErr(err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api4invites/sign-up-with-code",
		strings.NewReader(`{"code":"`+invite.Data.Code+`","name":"Diego Diaz"}`))
	router.ServeHTTP(w, r)
	is.Equal(w.Code, http.StatusOK)

	var signUp struct {
		Token  string `json:"token"`
		Member struct {
			TenantID string `json:"tenantID"`
			Role     string `json:"role"`
		} `json:"member"`
	}
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &signUp))
	is.True(signUp.Token != "")
	is.Equal(signUp.Member.TenantID, "owner-1")
	is.Equal(signUp.Member.Role, models.RoleEmpleado)

	// The single use is now consumed.
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/api4invites/sign-up-with-code",
		strings.NewReader(`{"code":"`+invite.Data.Code+`","name":"Fausto Flores"}`))
	router.ServeHTTP(w, r)
	is.Equal(w.Code, http.StatusNotFound)
}
