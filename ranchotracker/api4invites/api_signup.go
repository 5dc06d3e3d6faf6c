package api4invites

import (
	"context"
	"net/http"

	"github.com/rancho-co/ranchotracker-go/ranchotracker/auth"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/facade"
)

type signUpBody struct {
	Code  string `json:"code,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type memberDto struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	TenantID    string   `json:"tenantID"`
}

func signUpResponse(result facade.SignUpResult) map[string]interface{} {
	member := result.Member
	resp := map[string]interface{}{
		"token": auth.IssueToken(member.ID, member.Data.TenantID, member.Data.Role),
		"member": memberDto{
			ID:          member.ID,
			Name:        member.Data.Name,
			Role:        member.Data.Role,
			Permissions: member.Data.Permissions,
			TenantID:    member.Data.TenantID,
		},
	}
	if result.StarterInvite != nil {
		resp["starterInvite"] = inviteCodeToDto(*result.StarterInvite)
	}
	return resp
}

func HandleSignUpWithCode(c context.Context, w http.ResponseWriter, r *http.Request) {
	var body signUpBody
	if err := readJsonBody(r, &body); err != nil {
		BadRequestError(c, w, err)
		return
	}
	result, err := facade.Onboarding.SignUpWithInviteCode(c, body.Code, facade.MemberProfile{
		Name:  body.Name,
		Email: body.Email,
		Phone: body.Phone,
	})
	if err != nil {
		invitesError(c, w, err)
		return
	}
	jsonToResponse(c, w, signUpResponse(result))
}

func HandleSignUpAsOwner(c context.Context, w http.ResponseWriter, r *http.Request) {
	var body signUpBody
	if err := readJsonBody(r, &body); err != nil {
		BadRequestError(c, w, err)
		return
	}
	result, err := facade.Onboarding.SignUpAsOwner(c, facade.MemberProfile{
		Name:  body.Name,
		Email: body.Email,
		Phone: body.Phone,
	})
	if err != nil {
		invitesError(c, w, err)
		return
	}
	jsonToResponse(c, w, signUpResponse(result))
}
