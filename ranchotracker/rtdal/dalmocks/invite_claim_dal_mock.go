package dalmocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/dal-go/dalgo/dal"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal"
)

type InviteClaimDalMock struct {
	lastID int
	Claims map[string]*models.InviteClaimData

	// FailInsertClaim makes InsertInviteClaim fail, to test compensation paths.
	FailInsertClaim bool
}

var _ rtdal.InviteClaimDal = (*InviteClaimDalMock)(nil)

func NewInviteClaimDalMock() *InviteClaimDalMock {
	return &InviteClaimDalMock{
		Claims: make(map[string]*models.InviteClaimData),
	}
}

func (mock *InviteClaimDalMock) InsertInviteClaim(c context.Context, tx dal.ReadwriteTransaction, data *models.InviteClaimData) (claim models.InviteClaim, err error) {
	if mock.FailInsertClaim {
		return claim, errors.New("simulated failure to insert invite claim")
	}
	mock.lastID++
	claimID := fmt.Sprintf("claim-%d", mock.lastID)
	mock.Claims[claimID] = data
	return models.NewInviteClaim(claimID, data), nil
}

func (mock *InviteClaimDalMock) GetInviteClaimsByInviteID(c context.Context, tx dal.ReadSession, inviteID string) (claims []models.InviteClaim, err error) {
	for claimID, data := range mock.Claims {
		if data.InviteID == inviteID {
			copied := *data
			claims = append(claims, models.NewInviteClaim(claimID, &copied))
		}
	}
	return claims, nil
}
