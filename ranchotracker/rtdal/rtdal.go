// Package rtdal defines the data access contracts for the RanchoTracker
// invitation subsystem. Implementations are registered into the package-level
// singletons: invitesdal for the real document store, dalmocks for tests.
package rtdal

import (
	"context"
	"errors"
	"time"

	"github.com/dal-go/dalgo/dal"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
)

// ErrConcurrentConflict is returned by ConsumeInviteCodeUse when the record
// changed between the caller's read and the conditional write. The code
// should be treated as possibly exhausted, not retried blindly.
var ErrConcurrentConflict = errors.New("invite code was redeemed concurrently")

type InviteCodeDal interface {
	// InsertInviteCode stores a new code under a store-assigned random ID.
	InsertInviteCode(c context.Context, tx dal.ReadwriteTransaction, data *models.InviteCodeData) (models.InviteCode, error)

	GetInviteCodeByID(c context.Context, tx dal.ReadSession, inviteID string) (models.InviteCode, error)

	// GetInviteCodesByIssuerID returns all codes of an issuer, newest first.
	GetInviteCodesByIssuerID(c context.Context, tx dal.ReadSession, issuerID string) ([]models.InviteCode, error)

	// GetActiveInviteCodeByCode returns the most recent active record with the
	// given code string. The match is exact (codes are case-sensitive).
	GetActiveInviteCodeByCode(c context.Context, tx dal.ReadSession, code string) (models.InviteCode, error)

	// GetAnyInviteCodeByCode returns the most recent record with the given
	// code string regardless of its active flag. Used as the uniqueness
	// precheck when generating new codes.
	GetAnyInviteCodeByCode(c context.Context, tx dal.ReadSession, code string) (models.InviteCode, error)

	SaveInviteCode(c context.Context, tx dal.ReadwriteTransaction, invite models.InviteCode) error

	// ConsumeInviteCodeUse decrements UsesRemaining by one iff it still equals
	// expectedUses, recording who redeemed and when. The record is deleted
	// once the last use is consumed. Returns ErrConcurrentConflict if the
	// precondition no longer holds. Must be called within a transaction.
	ConsumeInviteCodeUse(c context.Context, tx dal.ReadwriteTransaction, inviteID string, expectedUses int, usedByMemberID string, now time.Time) error

	DeleteInviteCode(c context.Context, tx dal.ReadwriteTransaction, inviteID string) error
}

type InviteClaimDal interface {
	InsertInviteClaim(c context.Context, tx dal.ReadwriteTransaction, data *models.InviteClaimData) (models.InviteClaim, error)
	GetInviteClaimsByInviteID(c context.Context, tx dal.ReadSession, inviteID string) ([]models.InviteClaim, error)
}

type MemberDal interface {
	CreateMember(c context.Context, tx dal.ReadwriteTransaction, memberID string, data *models.MemberData) (models.Member, error)
	GetMemberByID(c context.Context, tx dal.ReadSession, memberID string) (models.Member, error)
	SaveMember(c context.Context, tx dal.ReadwriteTransaction, member models.Member) error
	DeleteMember(c context.Context, tx dal.ReadwriteTransaction, memberID string) error
}

// TransactionRunner executes f with transactional read-write access to the
// store. The invitation protocol relies on this for its atomicity guarantee:
// check-and-decrement must not interleave with another redeemer.
type TransactionRunner interface {
	RunInTransaction(c context.Context, f func(c context.Context, tx dal.ReadwriteTransaction) error) error
}

var (
	DB TransactionRunner

	Invite      InviteCodeDal
	InviteClaim InviteClaimDal
	Member      MemberDal
)
