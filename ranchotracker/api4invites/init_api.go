package api4invites

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func InitApi(router *httprouter.Router) {
	HandlerFunc := func(method, path string, handler ContextHandler) {
		router.HandlerFunc(method, path, HandleWithContext(handler))
		router.HandlerFunc(http.MethodOptions, path, HandleWithContext(OptionsHandler))
	}

	GET := func(path string, handler ContextHandler) {
		HandlerFunc(http.MethodGet, path, handler)
	}
	POST := func(path string, handler ContextHandler) {
		HandlerFunc(http.MethodPost, path, handler)
	}

	POST("/api4invites/sign-up-with-code", HandleSignUpWithCode)
	POST("/api4invites/sign-up-as-owner", HandleSignUpAsOwner)

	GET("/api4invites/invite-check", HandleCheckInviteCode)
	POST("/api4invites/invite-redeem", AuthOnly(HandleRedeemInviteCode))

	POST("/api4invites/invite-create", AuthOnly(HandleCreateInviteCode))
	GET("/api4invites/invites", AuthOnly(HandleListInviteCodes))
	POST("/api4invites/invite-revoke", AuthOnly(HandleRevokeInviteCode))
	POST("/api4invites/invite-delete", AuthOnly(HandleDeleteInviteCode))
	POST("/api4invites/invite-send", AuthOnly(HandleSendInvite))

	GET("/api4invites/admin/invite-claims", AdminOnly(HandleInviteClaims))
}
