package models

import (
	"fmt"
	"reflect"
	"time"

	"github.com/dal-go/dalgo/dal"
	"github.com/dal-go/dalgo/record"
	"github.com/strongo/validation"
)

const InviteCodeKind = "InviteCode"

// InviteCodeData is a single invitation code document.
//
// Code strings are matched exactly as generated. The default 6-char alphabet
// is mixed case; personalized 8-12 char codes are generated from an
// upper-case alphabet, so they never collide case-insensitively.
type InviteCodeData struct {
	Code     string
	IssuerID string
	RoleType string

	Active bool

	DtCreated time.Time
	DtExpires time.Time // zero value means the code never expires

	DtUsed         time.Time `datastore:",noindex"`
	UsedByMemberID string    `datastore:",noindex"`

	UsesRemaining int
	UsesTotal     int `datastore:",noindex"`
}

func (data *InviteCodeData) Validate() error {
	if data.Code == "" {
		return validation.NewErrRecordIsMissingRequiredField("Code")
	}
	if data.IssuerID == "" {
		return validation.NewErrRecordIsMissingRequiredField("IssuerID")
	}
	if data.RoleType == "" {
		return validation.NewErrRecordIsMissingRequiredField("RoleType")
	}
	if !IsKnownRoleType(data.RoleType) {
		return validation.NewErrBadRecordFieldValue("RoleType", "unknown role type: "+data.RoleType)
	}
	if data.UsesTotal < 1 {
		return validation.NewErrBadRecordFieldValue("UsesTotal", fmt.Sprintf("should be >= 1, got %d", data.UsesTotal))
	}
	if data.UsesRemaining < 0 || data.UsesRemaining > data.UsesTotal {
		return validation.NewErrBadRecordFieldValue("UsesRemaining",
			fmt.Sprintf("should be in [0, %d], got %d", data.UsesTotal, data.UsesRemaining))
	}
	if data.Active != (data.UsesRemaining > 0) {
		return validation.NewErrBadRecordFieldValue("Active",
			fmt.Sprintf("should be %t when UsesRemaining == %d", data.UsesRemaining > 0, data.UsesRemaining))
	}
	if data.DtCreated.IsZero() {
		return validation.NewErrRecordIsMissingRequiredField("DtCreated")
	}
	return nil
}

func (data *InviteCodeData) IsExpired(now time.Time) bool {
	return !data.DtExpires.IsZero() && !data.DtExpires.After(now)
}

// IsRedeemable reports whether the code would be accepted by redemption at
// the given moment. Advisory only: state can change before a redeem commits.
func (data *InviteCodeData) IsRedeemable(now time.Time) bool {
	return data.Active && data.UsesRemaining > 0 && !data.IsExpired(now)
}

type InviteCode struct {
	record.WithID[string]
	Data *InviteCodeData
}

func NewInviteCodeKey(inviteID string) *dal.Key {
	return dal.NewKeyWithID(InviteCodeKind, inviteID)
}

func NewInviteCode(inviteID string, data *InviteCodeData) InviteCode {
	key := NewInviteCodeKey(inviteID)
	if data == nil {
		data = new(InviteCodeData)
	}
	return InviteCode{
		WithID: record.WithID[string]{
			ID:     inviteID,
			Key:    key,
			Record: dal.NewRecordWithData(key, data),
		},
		Data: data,
	}
}

func NewInviteCodeRecord() dal.Record {
	return dal.NewRecordWithIncompleteKey(InviteCodeKind, reflect.String, new(InviteCodeData))
}

func InviteCodesFromRecords(records []dal.Record) []InviteCode {
	invites := make([]InviteCode, len(records))
	for i, r := range records {
		invites[i] = NewInviteCode(r.Key().ID.(string), r.Data().(*InviteCodeData))
	}
	return invites
}
