package facade

import (
	"context"
	"time"

	"github.com/dal-go/dalgo/dal"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal"
	"github.com/strongo/log"
	"github.com/strongo/random"
	"github.com/strongo/validation"
)

type onboardingFacade struct {
}

var Onboarding = onboardingFacade{}

const (
	// Auto-issued invite for a new ranch owner so staff can be invited
	// right away.
	StarterInviteUses    = 10
	StarterInviteTTLDays = 365
)

const memberIDLength = 16

var newMemberID = func() string {
	return random.ID(memberIDLength)
}

type MemberProfile struct {
	Name  string
	Email string
	Phone string
}

func (p MemberProfile) Validate() error {
	if p.Name == "" {
		return validation.NewErrRequestIsMissingRequiredField("name")
	}
	return nil
}

type SignUpResult struct {
	Member models.Member

	// Redemption is set when the member joined through an invite code.
	Redemption *RedemptionInfo

	// StarterInvite is set on owner self-signup.
	StarterInvite *models.InviteCode
}

// SignUpWithInviteCode registers a new member joining an existing ranch.
//
// The member profile is persisted first and the code use is consumed after,
// so a failed profile write never strands a consumed code. If consumption
// then fails (code just used up, expired, or store failure) the member
// record is deleted as compensation.
func (onboardingFacade) SignUpWithInviteCode(c context.Context, code string, profile MemberProfile) (result SignUpResult, err error) {
	if err = profile.Validate(); err != nil {
		return
	}

	var invite models.InviteCode
	if invite, err = checkInviteCode(c, nil, code); err != nil {
		return
	}

	memberID := newMemberID()
	role, permissions := models.ResolveRole(invite.Data.RoleType)
	data := &models.MemberData{
		Name:              profile.Name,
		Email:             profile.Email,
		Phone:             profile.Phone,
		Role:              role,
		Permissions:       permissions,
		TenantID:          invite.Data.IssuerID,
		InvitedByMemberID: invite.Data.IssuerID,
		DtCreated:         time.Now(),
	}

	var member models.Member
	if err = rtdal.DB.RunInTransaction(c, func(c context.Context, tx dal.ReadwriteTransaction) error {
		member, err = rtdal.Member.CreateMember(c, tx, memberID, data)
		return err
	}); err != nil {
		return
	}

	var info RedemptionInfo
	if info, err = Invites.RedeemInviteCode(c, invite.Data.Code, memberID); err != nil {
		// Compensate: the code was not consumed, so the member must not stay.
		if delErr := rtdal.DB.RunInTransaction(c, func(c context.Context, tx dal.ReadwriteTransaction) error {
			return rtdal.Member.DeleteMember(c, tx, memberID)
		}); delErr != nil {
			log.Errorf(c, "Failed to delete member %s after failed code consumption: %v", memberID, delErr)
		}
		return
	}

	// The record consumed may differ from the one checked if the code string
	// was exhausted and reissued in between. Re-derive from the redeemed
	// snapshot so the stored member matches what was actually consumed.
	if info.IssuerID != invite.Data.IssuerID || info.RoleType != invite.Data.RoleType {
		member.Data.Role, member.Data.Permissions = models.ResolveRole(info.RoleType)
		member.Data.TenantID = info.IssuerID
		member.Data.InvitedByMemberID = info.IssuerID
		if err = rtdal.DB.RunInTransaction(c, func(c context.Context, tx dal.ReadwriteTransaction) error {
			return rtdal.Member.SaveMember(c, tx, member)
		}); err != nil {
			return
		}
	}

	log.Infof(c, "Member %s joined tenant %s as %s", memberID, member.Data.TenantID, member.Data.Role)
	result = SignUpResult{Member: member, Redemption: &info}
	return result, nil
}

// SignUpAsOwner registers a self-service ranch owner: the member becomes
// their own tenant root with the full admin permission set, and a long-lived
// multi-use invite code is issued for them.
func (onboardingFacade) SignUpAsOwner(c context.Context, profile MemberProfile) (result SignUpResult, err error) {
	if err = profile.Validate(); err != nil {
		return
	}

	memberID := newMemberID()
	data := &models.MemberData{
		Name:        profile.Name,
		Email:       profile.Email,
		Phone:       profile.Phone,
		Role:        models.RoleAdmin,
		Permissions: models.AdminPermissions(),
		TenantID:    memberID,
		DtCreated:   time.Now(),
	}

	var member models.Member
	if err = rtdal.DB.RunInTransaction(c, func(c context.Context, tx dal.ReadwriteTransaction) error {
		member, err = rtdal.Member.CreateMember(c, tx, memberID, data)
		return err
	}); err != nil {
		return
	}

	var starter models.InviteCode
	if starter, err = Invites.CreateInviteCode(c, CreateInviteCodeRequest{
		IssuerID:  memberID,
		RoleType:  models.RoleEmpleado,
		UsesTotal: StarterInviteUses,
		TTLDays:   StarterInviteTTLDays,
	}); err != nil {
		// The owner account is usable without the starter code; don't fail
		// the signup over it.
		log.Errorf(c, "Failed to issue starter invite code for new owner %s: %v", memberID, err)
		err = nil
		result = SignUpResult{Member: member}
		return result, nil
	}

	log.Infof(c, "New owner %s signed up, starter invite code: %s", memberID, starter.Data.Code)
	result = SignUpResult{Member: member, StarterInvite: &starter}
	return result, nil
}
