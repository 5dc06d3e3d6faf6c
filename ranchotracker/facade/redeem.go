package facade

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dal-go/dalgo/dal"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal"
	"github.com/strongo/log"
	"github.com/strongo/validation"
)

// Redemption rejections. These are expected outcomes, returned as sentinel
// errors so callers can tell the user exactly why a code was refused. Only
// store failures propagate as other error values.
var (
	ErrInviteNotFound  = errors.New("invite code does not exist or is no longer active")
	ErrInviteExpired   = errors.New("invite code has expired")
	ErrInviteExhausted = errors.New("invite code has no remaining uses")
)

// RedemptionInfo is a snapshot of the redeemed code reflecting the
// post-redemption state, carrying what a caller needs to finish onboarding.
type RedemptionInfo struct {
	InviteID      string
	Code          string
	IssuerID      string
	RoleType      string
	UsesRemaining int
}

// RejectionReason maps a redemption rejection to a stable reason code for
// API responses. Returns false for store failures and other hard errors.
func RejectionReason(err error) (reason string, isRejection bool) {
	switch {
	case errors.Is(err, ErrInviteNotFound):
		return "not_found", true
	case errors.Is(err, ErrInviteExpired):
		return "expired", true
	case errors.Is(err, ErrInviteExhausted):
		return "exhausted", true
	case errors.Is(err, rtdal.ErrConcurrentConflict):
		return "concurrent_conflict", true
	}
	return "", false
}

// RedeemInviteCode consumes one use of a code on behalf of a member.
//
// The lookup, checks and decrement run in a single store transaction, and
// the decrement itself is conditional on the use count being unchanged since
// the read, so two concurrent redeemers can never both consume the last use.
// Consuming the last use deletes the record.
func (invitesFacade) RedeemInviteCode(c context.Context, code, memberID string) (info RedemptionInfo, err error) {
	if memberID == "" {
		return info, validation.NewErrRequestIsMissingRequiredField("memberID")
	}
	if code = strings.TrimSpace(code); code == "" {
		return info, ErrInviteNotFound
	}
	err = rtdal.DB.RunInTransaction(c, func(c context.Context, tx dal.ReadwriteTransaction) error {
		invite, err := checkInviteCode(c, tx, code)
		if err != nil {
			return err
		}
		now := time.Now()
		expectedUses := invite.Data.UsesRemaining
		if err = rtdal.Invite.ConsumeInviteCodeUse(c, tx, invite.ID, expectedUses, memberID, now); err != nil {
			return err
		}
		if _, err = rtdal.InviteClaim.InsertInviteClaim(c, tx, &models.InviteClaimData{
			InviteID:   invite.ID,
			InviteCode: invite.Data.Code,
			MemberID:   memberID,
			DtClaimed:  now,
			ClaimedVia: "app",
		}); err != nil {
			return err
		}
		info = RedemptionInfo{
			InviteID:      invite.ID,
			Code:          invite.Data.Code,
			IssuerID:      invite.Data.IssuerID,
			RoleType:      invite.Data.RoleType,
			UsesRemaining: expectedUses - 1,
		}
		return nil
	})
	if err != nil {
		if reason, isRejection := RejectionReason(err); isRejection {
			log.Infof(c, "Invite code redemption rejected: %s", reason)
		}
		return info, err
	}
	log.Infof(c, "Member %s redeemed invite code %s: %d use(s) left", memberID, info.Code, info.UsesRemaining)
	return info, nil
}

// CheckInviteCode reports whether a code would currently be accepted,
// without consuming a use. Advisory only: the answer can change before a
// subsequent redeem, which re-checks inside its transaction.
func (invitesFacade) CheckInviteCode(c context.Context, code string) error {
	if code = strings.TrimSpace(code); code == "" {
		return ErrInviteNotFound
	}
	_, err := checkInviteCode(c, nil, code)
	return err
}

// checkInviteCode performs the read-only redemption checks: the code must
// exist as an active record, be unexpired and have uses remaining.
func checkInviteCode(c context.Context, tx dal.ReadSession, code string) (invite models.InviteCode, err error) {
	if invite, err = rtdal.Invite.GetActiveInviteCodeByCode(c, tx, code); err != nil {
		if dal.IsNotFound(err) {
			return invite, ErrInviteNotFound
		}
		return invite, err
	}
	if invite.Data.IsExpired(time.Now()) {
		return invite, ErrInviteExpired
	}
	if invite.Data.UsesRemaining <= 0 {
		// Unreachable while the store invariant Active == (UsesRemaining > 0)
		// holds; checked defensively.
		return invite, ErrInviteExhausted
	}
	return invite, nil
}
