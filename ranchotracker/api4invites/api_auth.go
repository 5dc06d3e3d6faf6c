package api4invites

import (
	"context"
	"net/http"

	"github.com/rancho-co/ranchotracker-go/ranchotracker/auth"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/strongo/log"
)

type AuthHandler func(c context.Context, w http.ResponseWriter, r *http.Request, authInfo auth.AuthInfo)

func AuthOnly(handler AuthHandler) ContextHandler {
	return func(c context.Context, w http.ResponseWriter, r *http.Request) {
		if authInfo, err := auth.Authenticate(w, r, true); err == nil {
			handler(c, w, r, authInfo)
		} else {
			log.Infof(c, "Failed to authenticate: %v", err.Error())
		}
	}
}

func AdminOnly(handler AuthHandler) ContextHandler {
	return AuthOnly(func(c context.Context, w http.ResponseWriter, r *http.Request, authInfo auth.AuthInfo) {
		if authInfo.Role != models.RoleAdmin {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		handler(c, w, r, authInfo)
	})
}

func ReturnToken(_ context.Context, w http.ResponseWriter, member models.Member) {
	token := auth.IssueToken(member.ID, member.Data.TenantID, member.Data.Role)
	header := w.Header()
	header.Add("Access-Control-Allow-Origin", "*")
	header.Add("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"token":"` + token + `"}`))
}
