package dalmocks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dal-go/dalgo/dal"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal"
)

type InviteCodeDalMock struct {
	lastID  int
	Invites map[string]*models.InviteCodeData
}

var _ rtdal.InviteCodeDal = (*InviteCodeDalMock)(nil)

func NewInviteCodeDalMock() *InviteCodeDalMock {
	return &InviteCodeDalMock{
		Invites: make(map[string]*models.InviteCodeData),
	}
}

func (mock *InviteCodeDalMock) InsertInviteCode(c context.Context, tx dal.ReadwriteTransaction, data *models.InviteCodeData) (invite models.InviteCode, err error) {
	if err = data.Validate(); err != nil {
		return
	}
	mock.lastID++
	inviteID := fmt.Sprintf("invite-%d", mock.lastID)
	mock.Invites[inviteID] = data
	return models.NewInviteCode(inviteID, data), nil
}

func (mock *InviteCodeDalMock) GetInviteCodeByID(c context.Context, tx dal.ReadSession, inviteID string) (invite models.InviteCode, err error) {
	if data, ok := mock.Invites[inviteID]; ok {
		copied := *data
		return models.NewInviteCode(inviteID, &copied), nil
	}
	return invite, fmt.Errorf("invite code not found by ID=%s: %w", inviteID, dal.ErrRecordNotFound)
}

func (mock *InviteCodeDalMock) GetInviteCodesByIssuerID(c context.Context, tx dal.ReadSession, issuerID string) (invites []models.InviteCode, err error) {
	for inviteID, data := range mock.Invites {
		if data.IssuerID == issuerID {
			copied := *data
			invites = append(invites, models.NewInviteCode(inviteID, &copied))
		}
	}
	sort.Slice(invites, func(i, j int) bool {
		return invites[i].Data.DtCreated.After(invites[j].Data.DtCreated)
	})
	return invites, nil
}

func (mock *InviteCodeDalMock) GetActiveInviteCodeByCode(c context.Context, tx dal.ReadSession, code string) (models.InviteCode, error) {
	return mock.getByCode(code, true)
}

func (mock *InviteCodeDalMock) GetAnyInviteCodeByCode(c context.Context, tx dal.ReadSession, code string) (models.InviteCode, error) {
	return mock.getByCode(code, false)
}

func (mock *InviteCodeDalMock) getByCode(code string, activeOnly bool) (invite models.InviteCode, err error) {
	var found bool
	for inviteID, data := range mock.Invites {
		if data.Code != code || (activeOnly && !data.Active) {
			continue
		}
		if !found || data.DtCreated.After(invite.Data.DtCreated) {
			copied := *data
			invite = models.NewInviteCode(inviteID, &copied)
			found = true
		}
	}
	if !found {
		return invite, fmt.Errorf("invite code not found by Code: %w", dal.ErrRecordNotFound)
	}
	return invite, nil
}

func (mock *InviteCodeDalMock) SaveInviteCode(c context.Context, tx dal.ReadwriteTransaction, invite models.InviteCode) error {
	if err := invite.Data.Validate(); err != nil {
		return err
	}
	copied := *invite.Data
	mock.Invites[invite.ID] = &copied
	return nil
}

func (mock *InviteCodeDalMock) ConsumeInviteCodeUse(c context.Context, tx dal.ReadwriteTransaction, inviteID string, expectedUses int, usedByMemberID string, now time.Time) error {
	data, ok := mock.Invites[inviteID]
	if !ok {
		return rtdal.ErrConcurrentConflict
	}
	if data.UsesRemaining != expectedUses {
		return rtdal.ErrConcurrentConflict
	}
	data.UsesRemaining--
	data.Active = data.UsesRemaining > 0
	data.DtUsed = now
	data.UsedByMemberID = usedByMemberID
	if data.UsesRemaining == 0 {
		delete(mock.Invites, inviteID)
	}
	return nil
}

func (mock *InviteCodeDalMock) DeleteInviteCode(c context.Context, tx dal.ReadwriteTransaction, inviteID string) error {
	delete(mock.Invites, inviteID)
	return nil
}
