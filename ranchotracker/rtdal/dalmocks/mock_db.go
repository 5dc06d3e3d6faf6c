// Package dalmocks provides in-memory implementations of the rtdal contracts
// for tests. Transactions are serialized on a single mutex, which gives the
// same effective isolation the real store's transactions provide.
package dalmocks

import (
	"context"
	"sync"

	"github.com/dal-go/dalgo/dal"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal"
)

type MockDB struct {
	mu sync.Mutex

	InviteMock *InviteCodeDalMock
	ClaimMock  *InviteClaimDalMock
	MemberMock *MemberDalMock
}

// NewMockDB creates the mocks and registers them into the rtdal singletons,
// replacing whatever was registered before.
func NewMockDB() *MockDB {
	mockDB := &MockDB{
		InviteMock: NewInviteCodeDalMock(),
		ClaimMock:  NewInviteClaimDalMock(),
		MemberMock: NewMemberDalMock(),
	}

	rtdal.DB = mockDB
	rtdal.Invite = mockDB.InviteMock
	rtdal.InviteClaim = mockDB.ClaimMock
	rtdal.Member = mockDB.MemberMock

	return mockDB
}

func (mockDB *MockDB) RunInTransaction(c context.Context, f func(c context.Context, tx dal.ReadwriteTransaction) error) error {
	mockDB.mu.Lock()
	defer mockDB.mu.Unlock()
	return f(c, nil)
}
