package invitesdal

import (
	"context"
	"fmt"

	"github.com/dal-go/dalgo/dal"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal"
	"github.com/strongo/random"
)

const claimIDLength = 16

type inviteClaimDalgo struct {
}

var _ rtdal.InviteClaimDal = (*inviteClaimDalgo)(nil)

func (inviteClaimDalgo) InsertInviteClaim(c context.Context, tx dal.ReadwriteTransaction, data *models.InviteClaimData) (claim models.InviteClaim, err error) {
	claim = models.NewInviteClaim(random.ID(claimIDLength), data)
	if err = tx.Insert(c, claim.Record); err != nil {
		return claim, fmt.Errorf("failed to insert InviteClaim record: %w", err)
	}
	return claim, nil
}

func (inviteClaimDalgo) GetInviteClaimsByInviteID(c context.Context, tx dal.ReadSession, inviteID string) (claims []models.InviteClaim, err error) {
	if tx == nil {
		if tx, err = getReadSession(c); err != nil {
			return
		}
	}
	q := dal.From(models.InviteClaimKind).
		WhereField("InviteID", dal.Equal, inviteID).
		SelectInto(models.NewInviteClaimRecord)
	var records []dal.Record
	if records, err = tx.QueryAllRecords(c, q); err != nil {
		return nil, fmt.Errorf("failed to select invite claims by InviteID=%s: %w", inviteID, err)
	}
	claims = make([]models.InviteClaim, len(records))
	for i, r := range records {
		claims[i] = models.NewInviteClaim(r.Key().ID.(string), r.Data().(*models.InviteClaimData))
	}
	return claims, nil
}
