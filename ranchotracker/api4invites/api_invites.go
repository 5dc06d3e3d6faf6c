package api4invites

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/pquerna/ffjson/ffjson"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/auth"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/facade"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/invites"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal"
)

type InviteCodeDto struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	RoleType      string `json:"roleType"`
	Active        bool   `json:"active"`
	DtCreated     string `json:"dtCreated"`
	DtExpires     string `json:"dtExpires,omitempty"`
	UsesRemaining int    `json:"usesRemaining"`
	UsesTotal     int    `json:"usesTotal"`
}

func inviteCodeToDto(invite models.InviteCode) InviteCodeDto {
	dto := InviteCodeDto{
		ID:            invite.ID,
		Code:          invite.Data.Code,
		RoleType:      invite.Data.RoleType,
		Active:        invite.Data.Active,
		DtCreated:     invite.Data.DtCreated.Format(time.RFC3339),
		UsesRemaining: invite.Data.UsesRemaining,
		UsesTotal:     invite.Data.UsesTotal,
	}
	if !invite.Data.DtExpires.IsZero() {
		dto.DtExpires = invite.Data.DtExpires.Format(time.RFC3339)
	}
	return dto
}

func readJsonBody(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read request body")
	}
	if err = ffjson.Unmarshal(body, v); err != nil {
		return errors.Wrap(err, "failed to parse request body as JSON")
	}
	return nil
}

// invitesError maps facade errors to HTTP responses. Redemption rejections
// get a stable machine-readable reason alongside the message.
func invitesError(c context.Context, w http.ResponseWriter, err error) {
	if reason, isRejection := facade.RejectionReason(err); isRejection {
		status := http.StatusConflict
		if reason == "not_found" {
			status = http.StatusNotFound
		}
		markResponseAsJson(w.Header())
		w.WriteHeader(status)
		buffer, _ := ffjson.Marshal(map[string]string{"error": err.Error(), "reason": reason})
		_, _ = w.Write(buffer)
		ffjson.Pool(buffer)
		return
	}
	switch {
	case errors.Is(err, facade.ErrNotInviteIssuer):
		ErrorAsJson(c, w, http.StatusForbidden, err)
	case errors.Is(err, facade.ErrGenerationExhausted):
		ErrorAsJson(c, w, http.StatusConflict, err)
	default:
		InternalError(c, w, err)
	}
}

func HandleCreateInviteCode(c context.Context, w http.ResponseWriter, r *http.Request, authInfo auth.AuthInfo) {
	var body struct {
		RoleType   string `json:"roleType"`
		UsesTotal  int    `json:"usesTotal"`
		TTLDays    int    `json:"ttlDays"`
		CodeLength int    `json:"codeLength"`
	}
	if err := readJsonBody(r, &body); err != nil {
		BadRequestError(c, w, err)
		return
	}
	req := facade.CreateInviteCodeRequest{
		IssuerID:   authInfo.MemberID,
		RoleType:   body.RoleType,
		UsesTotal:  body.UsesTotal,
		TTLDays:    body.TTLDays,
		CodeLength: body.CodeLength,
	}
	if err := req.Validate(); err != nil {
		BadRequestError(c, w, err)
		return
	}
	invite, err := facade.Invites.CreateInviteCode(c, req)
	if err != nil {
		invitesError(c, w, err)
		return
	}
	jsonToResponse(c, w, inviteCodeToDto(invite))
}

func HandleListInviteCodes(c context.Context, w http.ResponseWriter, r *http.Request, authInfo auth.AuthInfo) {
	inviteCodes, err := facade.Invites.ListInviteCodes(c, authInfo.MemberID)
	if err != nil {
		invitesError(c, w, err)
		return
	}
	dtos := make([]InviteCodeDto, len(inviteCodes))
	for i, invite := range inviteCodes {
		dtos[i] = inviteCodeToDto(invite)
	}
	jsonToResponse(c, w, dtos)
}

func HandleCheckInviteCode(c context.Context, w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		BadRequestError(c, w, errors.New("missing 'code' parameter"))
		return
	}
	if err := facade.Invites.CheckInviteCode(c, code); err != nil {
		invitesError(c, w, err)
		return
	}
	jsonToResponse(c, w, map[string]bool{"valid": true})
}

func HandleRedeemInviteCode(c context.Context, w http.ResponseWriter, r *http.Request, authInfo auth.AuthInfo) {
	var body struct {
		Code string `json:"code"`
	}
	if err := readJsonBody(r, &body); err != nil {
		BadRequestError(c, w, err)
		return
	}
	info, err := facade.Invites.RedeemInviteCode(c, body.Code, authInfo.MemberID)
	if err != nil {
		invitesError(c, w, err)
		return
	}
	jsonToResponse(c, w, map[string]interface{}{
		"inviteID":      info.InviteID,
		"roleType":      info.RoleType,
		"usesRemaining": info.UsesRemaining,
	})
}

func HandleRevokeInviteCode(c context.Context, w http.ResponseWriter, r *http.Request, authInfo auth.AuthInfo) {
	var body struct {
		InviteID string `json:"inviteID"`
	}
	if err := readJsonBody(r, &body); err != nil {
		BadRequestError(c, w, err)
		return
	}
	if err := facade.Invites.RevokeInviteCode(c, authInfo.MemberID, body.InviteID); err != nil {
		invitesError(c, w, err)
		return
	}
	jsonToResponse(c, w, map[string]bool{"revoked": true})
}

func HandleDeleteInviteCode(c context.Context, w http.ResponseWriter, r *http.Request, authInfo auth.AuthInfo) {
	var body struct {
		InviteID string `json:"inviteID"`
	}
	if err := readJsonBody(r, &body); err != nil {
		BadRequestError(c, w, err)
		return
	}
	if err := facade.Invites.DeleteInviteCode(c, authInfo.MemberID, body.InviteID); err != nil {
		invitesError(c, w, err)
		return
	}
	jsonToResponse(c, w, map[string]bool{"deleted": true})
}

func HandleInviteClaims(c context.Context, w http.ResponseWriter, r *http.Request, authInfo auth.AuthInfo) {
	inviteID := r.URL.Query().Get("inviteID")
	if inviteID == "" {
		BadRequestError(c, w, errors.New("missing 'inviteID' parameter"))
		return
	}
	claims, err := rtdal.InviteClaim.GetInviteClaimsByInviteID(c, nil, inviteID)
	if err != nil {
		InternalError(c, w, err)
		return
	}
	type claimDto struct {
		MemberID   string `json:"memberID"`
		DtClaimed  string `json:"dtClaimed"`
		ClaimedVia string `json:"claimedVia,omitempty"`
	}
	dtos := make([]claimDto, len(claims))
	for i, claim := range claims {
		dtos[i] = claimDto{
			MemberID:   claim.Data.MemberID,
			DtClaimed:  claim.Data.DtClaimed.Format(time.RFC3339),
			ClaimedVia: claim.Data.ClaimedVia,
		}
	}
	jsonToResponse(c, w, dtos)
}

func HandleSendInvite(c context.Context, w http.ResponseWriter, r *http.Request, authInfo auth.AuthInfo) {
	var body struct {
		InviteID      string `json:"inviteID"`
		ToEmail       string `json:"toEmail"`
		ToPhoneNumber string `json:"toPhoneNumber"`
	}
	if err := readJsonBody(r, &body); err != nil {
		BadRequestError(c, w, err)
		return
	}
	if body.ToEmail == "" && body.ToPhoneNumber == "" {
		BadRequestError(c, w, errors.New("either 'toEmail' or 'toPhoneNumber' is required"))
		return
	}
	invite, err := facade.Invites.GetInviteCode(c, authInfo.MemberID, body.InviteID)
	if err != nil {
		invitesError(c, w, err)
		return
	}
	issuer, err := rtdal.Member.GetMemberByID(c, nil, authInfo.MemberID)
	if err != nil {
		InternalError(c, w, err)
		return
	}
	if body.ToEmail != "" {
		if _, err = invites.SendInviteByEmail(c, invite, issuer.Data.Name, body.ToEmail); err != nil {
			InternalError(c, w, err)
			return
		}
	}
	if body.ToPhoneNumber != "" {
		if _, _, err = invites.SendInviteBySms(c, invite, issuer.Data.Name, body.ToPhoneNumber); err != nil {
			InternalError(c, w, err)
			return
		}
	}
	jsonToResponse(c, w, map[string]bool{"sent": true})
}
