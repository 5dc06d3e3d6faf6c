package dalmocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/dal-go/dalgo/dal"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal"
)

type MemberDalMock struct {
	Members map[string]*models.MemberData

	// FailCreateMember makes CreateMember fail, to test compensation paths.
	FailCreateMember bool
}

var _ rtdal.MemberDal = (*MemberDalMock)(nil)

func NewMemberDalMock() *MemberDalMock {
	return &MemberDalMock{
		Members: make(map[string]*models.MemberData),
	}
}

func (mock *MemberDalMock) CreateMember(c context.Context, tx dal.ReadwriteTransaction, memberID string, data *models.MemberData) (member models.Member, err error) {
	if mock.FailCreateMember {
		return member, errors.New("simulated failure to create member")
	}
	if err = data.Validate(); err != nil {
		return
	}
	if _, ok := mock.Members[memberID]; ok {
		return member, fmt.Errorf("member already exists: ID=%s", memberID)
	}
	mock.Members[memberID] = data
	return models.NewMember(memberID, data), nil
}

func (mock *MemberDalMock) GetMemberByID(c context.Context, tx dal.ReadSession, memberID string) (member models.Member, err error) {
	if data, ok := mock.Members[memberID]; ok {
		copied := *data
		return models.NewMember(memberID, &copied), nil
	}
	return member, fmt.Errorf("member not found by ID=%s: %w", memberID, dal.ErrRecordNotFound)
}

func (mock *MemberDalMock) SaveMember(c context.Context, tx dal.ReadwriteTransaction, member models.Member) error {
	if err := member.Data.Validate(); err != nil {
		return err
	}
	copied := *member.Data
	mock.Members[member.ID] = &copied
	return nil
}

func (mock *MemberDalMock) DeleteMember(c context.Context, tx dal.ReadwriteTransaction, memberID string) error {
	delete(mock.Members, memberID)
	return nil
}
