package models

import (
	"time"

	"github.com/dal-go/dalgo/dal"
	"github.com/dal-go/dalgo/record"
	"github.com/strongo/validation"
)

const MemberKind = "Member"

// MemberData is a ranch member profile with the role, permissions and tenant
// derived during onboarding. TenantID is the ranch owner's member ID; an
// owner is their own tenant root.
type MemberData struct {
	Name  string
	Email string
	Phone string `datastore:",noindex"`

	Role        string
	Permissions []string `datastore:",noindex"`
	TenantID    string

	InvitedByMemberID string

	DtCreated time.Time
}

func (data *MemberData) Validate() error {
	if data.Name == "" {
		return validation.NewErrRecordIsMissingRequiredField("Name")
	}
	if data.Role == "" {
		return validation.NewErrRecordIsMissingRequiredField("Role")
	}
	if data.TenantID == "" {
		return validation.NewErrRecordIsMissingRequiredField("TenantID")
	}
	return nil
}

type Member struct {
	record.WithID[string]
	Data *MemberData
}

func NewMemberKey(memberID string) *dal.Key {
	return dal.NewKeyWithID(MemberKind, memberID)
}

func NewMember(memberID string, data *MemberData) Member {
	key := NewMemberKey(memberID)
	if data == nil {
		data = new(MemberData)
	}
	return Member{
		WithID: record.WithID[string]{
			ID:     memberID,
			Key:    key,
			Record: dal.NewRecordWithData(key, data),
		},
		Data: data,
	}
}
