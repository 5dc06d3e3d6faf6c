package facade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dal-go/dalgo/dal"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/common"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal"
	"github.com/strongo/log"
	"github.com/strongo/validation"
)

type invitesFacade struct {
}

var Invites = invitesFacade{}

const (
	DefaultInviteTTLDays = 30
	MaxInviteCodeLength  = 12

	maxCodeGenerationAttempts = 20
)

// ErrGenerationExhausted means the uniqueness retry loop could not find an
// unused code string. The issuer should try a longer code length.
var ErrGenerationExhausted = errors.New("failed to generate a unique invite code")

// ErrNotInviteIssuer is returned when an issuer-only operation is attempted
// on a code created by somebody else.
var ErrNotInviteIssuer = errors.New("invite code was issued by another member")

// Overridable in tests to force collisions.
var (
	randomCode         = common.RandomCode
	randomPersonalCode = common.RandomPersonalCode
)

type CreateInviteCodeRequest struct {
	IssuerID string
	RoleType string

	UsesTotal int

	// TTLDays of 0 applies DefaultInviteTTLDays; a negative value creates a
	// code that never expires.
	TTLDays int

	// CodeLength of 0 applies common.DefaultInviteCodeLength. Lengths above
	// the default use the personalized upper+digits alphabet.
	CodeLength int
}

func (req CreateInviteCodeRequest) Validate() error {
	if req.IssuerID == "" {
		return validation.NewErrRequestIsMissingRequiredField("issuerID")
	}
	if req.RoleType == "" {
		return validation.NewErrRequestIsMissingRequiredField("roleType")
	}
	if !models.IsKnownRoleType(req.RoleType) {
		return validation.NewErrBadRequestFieldValue("roleType", "unknown role type: "+req.RoleType)
	}
	if req.UsesTotal < 1 {
		return validation.NewErrBadRequestFieldValue("usesTotal", fmt.Sprintf("should be >= 1, got %d", req.UsesTotal))
	}
	if req.CodeLength < 0 || req.CodeLength > MaxInviteCodeLength {
		return validation.NewErrBadRequestFieldValue("codeLength", fmt.Sprintf("should be in [1, %d], got %d", MaxInviteCodeLength, req.CodeLength))
	}
	return nil
}

// CreateInviteCode generates a code unused by any existing record (active or
// not) and stores it. The generate-and-check loop is bounded: after
// maxCodeGenerationAttempts collisions it fails with ErrGenerationExhausted.
func (invitesFacade) CreateInviteCode(c context.Context, req CreateInviteCodeRequest) (invite models.InviteCode, err error) {
	if err = req.Validate(); err != nil {
		return
	}
	codeLength := req.CodeLength
	if codeLength == 0 {
		codeLength = common.DefaultInviteCodeLength
	}
	ttlDays := req.TTLDays
	if ttlDays == 0 {
		ttlDays = DefaultInviteTTLDays
	}

	err = rtdal.DB.RunInTransaction(c, func(c context.Context, tx dal.ReadwriteTransaction) error {
		var code string
		for attempt := 1; ; attempt++ {
			if attempt > maxCodeGenerationAttempts {
				log.Warningf(c, "No unique invite code of length %d found in %d attempts", codeLength, maxCodeGenerationAttempts)
				return ErrGenerationExhausted
			}
			if codeLength > common.DefaultInviteCodeLength {
				code = randomPersonalCode(codeLength)
			} else {
				code = randomCode(codeLength)
			}
			_, err := rtdal.Invite.GetAnyInviteCodeByCode(c, tx, code)
			if dal.IsNotFound(err) {
				break
			} else if err != nil {
				return err
			}
			log.Debugf(c, "Invite code already taken, retrying (attempt %d)", attempt)
		}

		now := time.Now()
		data := &models.InviteCodeData{
			Code:          code,
			IssuerID:      req.IssuerID,
			RoleType:      req.RoleType,
			Active:        true,
			DtCreated:     now,
			UsesRemaining: req.UsesTotal,
			UsesTotal:     req.UsesTotal,
		}
		if ttlDays > 0 {
			data.DtExpires = now.AddDate(0, 0, ttlDays)
		}
		var err error
		invite, err = rtdal.Invite.InsertInviteCode(c, tx, data)
		return err
	})
	if err != nil {
		return invite, err
	}
	log.Infof(c, "Created invite code %s for issuer %s: role=%s, uses=%d", invite.Data.Code, req.IssuerID, req.RoleType, req.UsesTotal)
	return invite, nil
}

// GetInviteCode returns a code by ID, enforcing that it was issued by the
// given member.
func (invitesFacade) GetInviteCode(c context.Context, issuerID, inviteID string) (models.InviteCode, error) {
	return getOwnInviteCode(c, nil, issuerID, inviteID)
}

// ListInviteCodes returns all codes issued by a member, newest first.
func (invitesFacade) ListInviteCodes(c context.Context, issuerID string) ([]models.InviteCode, error) {
	if issuerID == "" {
		return nil, validation.NewErrRequestIsMissingRequiredField("issuerID")
	}
	return rtdal.Invite.GetInviteCodesByIssuerID(c, nil, issuerID)
}

// RevokeInviteCode deactivates a code without deleting the record. Remaining
// uses are forfeited.
func (invitesFacade) RevokeInviteCode(c context.Context, issuerID, inviteID string) error {
	return rtdal.DB.RunInTransaction(c, func(c context.Context, tx dal.ReadwriteTransaction) error {
		invite, err := getOwnInviteCode(c, tx, issuerID, inviteID)
		if err != nil {
			return err
		}
		if !invite.Data.Active {
			return nil
		}
		invite.Data.Active = false
		invite.Data.UsesRemaining = 0
		if err = rtdal.Invite.SaveInviteCode(c, tx, invite); err != nil {
			return fmt.Errorf("failed to save revoked invite code: %w", err)
		}
		log.Infof(c, "Revoked invite code %s (ID=%s)", invite.Data.Code, inviteID)
		return nil
	})
}

// DeleteInviteCode removes a code record entirely.
func (invitesFacade) DeleteInviteCode(c context.Context, issuerID, inviteID string) error {
	return rtdal.DB.RunInTransaction(c, func(c context.Context, tx dal.ReadwriteTransaction) error {
		if _, err := getOwnInviteCode(c, tx, issuerID, inviteID); err != nil {
			return err
		}
		return rtdal.Invite.DeleteInviteCode(c, tx, inviteID)
	})
}

func getOwnInviteCode(c context.Context, tx dal.ReadSession, issuerID, inviteID string) (invite models.InviteCode, err error) {
	if issuerID == "" {
		return invite, validation.NewErrRequestIsMissingRequiredField("issuerID")
	}
	if inviteID == "" {
		return invite, validation.NewErrRequestIsMissingRequiredField("inviteID")
	}
	if invite, err = rtdal.Invite.GetInviteCodeByID(c, tx, inviteID); err != nil {
		return
	}
	if invite.Data.IssuerID != issuerID {
		return invite, ErrNotInviteIssuer
	}
	return invite, nil
}
