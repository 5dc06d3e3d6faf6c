package models

import (
	"reflect"
	"time"

	"github.com/dal-go/dalgo/dal"
	"github.com/dal-go/dalgo/record"
)

const InviteClaimKind = "InviteClaim"

// InviteClaimData is an audit record of one successful redemption.
type InviteClaimData struct {
	InviteID   string
	InviteCode string // Not used as parent key as it can be a bottleneck for high-use codes
	MemberID   string
	DtClaimed  time.Time
	ClaimedOn  string `datastore:",noindex"` // For example: "ios", "android", "web"
	ClaimedVia string `datastore:",noindex"` // For example: "app", "email", "sms"
}

type InviteClaim struct {
	record.WithID[string]
	Data *InviteClaimData
}

func NewInviteClaimKey(claimID string) *dal.Key {
	return dal.NewKeyWithID(InviteClaimKind, claimID)
}

func NewInviteClaim(claimID string, data *InviteClaimData) InviteClaim {
	key := NewInviteClaimKey(claimID)
	if data == nil {
		data = new(InviteClaimData)
	}
	return InviteClaim{
		WithID: record.WithID[string]{
			ID:     claimID,
			Key:    key,
			Record: dal.NewRecordWithData(key, data),
		},
		Data: data,
	}
}

func NewInviteClaimRecord() dal.Record {
	return dal.NewRecordWithIncompleteKey(InviteClaimKind, reflect.String, new(InviteClaimData))
}
