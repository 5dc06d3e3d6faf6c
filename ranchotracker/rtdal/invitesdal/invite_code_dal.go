package invitesdal

import (
	"context"
	"fmt"
	"time"

	"github.com/dal-go/dalgo/dal"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal"
	"github.com/strongo/random"
)

const inviteIDLength = 16

type inviteCodeDalgo struct {
}

var _ rtdal.InviteCodeDal = (*inviteCodeDalgo)(nil)

func (inviteCodeDalgo) InsertInviteCode(c context.Context, tx dal.ReadwriteTransaction, data *models.InviteCodeData) (invite models.InviteCode, err error) {
	if err = data.Validate(); err != nil {
		return invite, fmt.Errorf("invalid invite code record: %w", err)
	}
	invite = models.NewInviteCode(random.ID(inviteIDLength), data)
	if err = tx.Insert(c, invite.Record); err != nil {
		return invite, fmt.Errorf("failed to insert InviteCode record: %w", err)
	}
	return invite, nil
}

func (inviteCodeDalgo) GetInviteCodeByID(c context.Context, tx dal.ReadSession, inviteID string) (invite models.InviteCode, err error) {
	if tx == nil {
		if tx, err = getReadSession(c); err != nil {
			return
		}
	}
	invite = models.NewInviteCode(inviteID, nil)
	return invite, tx.Get(c, invite.Record)
}

func (inviteCodeDalgo) GetInviteCodesByIssuerID(c context.Context, tx dal.ReadSession, issuerID string) (invites []models.InviteCode, err error) {
	if tx == nil {
		if tx, err = getReadSession(c); err != nil {
			return
		}
	}
	q := dal.From(models.InviteCodeKind).
		WhereField("IssuerID", dal.Equal, issuerID).
		OrderBy(dal.DescendingField("DtCreated")).
		SelectInto(models.NewInviteCodeRecord)
	var records []dal.Record
	if records, err = tx.QueryAllRecords(c, q); err != nil {
		return nil, fmt.Errorf("failed to select invite codes by IssuerID=%s: %w", issuerID, err)
	}
	return models.InviteCodesFromRecords(records), nil
}

func (d inviteCodeDalgo) GetActiveInviteCodeByCode(c context.Context, tx dal.ReadSession, code string) (models.InviteCode, error) {
	return d.getByCode(c, tx, code, true)
}

func (d inviteCodeDalgo) GetAnyInviteCodeByCode(c context.Context, tx dal.ReadSession, code string) (models.InviteCode, error) {
	return d.getByCode(c, tx, code, false)
}

func (inviteCodeDalgo) getByCode(c context.Context, tx dal.ReadSession, code string, activeOnly bool) (invite models.InviteCode, err error) {
	if tx == nil {
		if tx, err = getReadSession(c); err != nil {
			return
		}
	}
	q := dal.From(models.InviteCodeKind).
		WhereField("Code", dal.Equal, code)
	if activeOnly {
		q = q.WhereField("Active", dal.Equal, true)
	}
	query := q.OrderBy(dal.DescendingField("DtCreated")).
		Limit(1).
		SelectInto(models.NewInviteCodeRecord)
	var records []dal.Record
	if records, err = tx.QueryAllRecords(c, query); err != nil {
		return invite, fmt.Errorf("failed to select invite code by Code: %w", err)
	}
	if len(records) == 0 {
		return invite, fmt.Errorf("invite code not found by Code: %w", dal.ErrRecordNotFound)
	}
	return models.NewInviteCode(records[0].Key().ID.(string), records[0].Data().(*models.InviteCodeData)), nil
}

func (inviteCodeDalgo) SaveInviteCode(c context.Context, tx dal.ReadwriteTransaction, invite models.InviteCode) error {
	if err := invite.Data.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid invite code record: %w", err)
	}
	return tx.Set(c, invite.Record)
}

func (inviteCodeDalgo) ConsumeInviteCodeUse(c context.Context, tx dal.ReadwriteTransaction, inviteID string, expectedUses int, usedByMemberID string, now time.Time) error {
	if tx == nil {
		panic("ConsumeInviteCodeUse requires a transaction")
	}
	invite := models.NewInviteCode(inviteID, nil)
	if err := tx.Get(c, invite.Record); err != nil {
		if dal.IsNotFound(err) {
			// Deleted by a concurrent redeemer or revoked by the issuer.
			return rtdal.ErrConcurrentConflict
		}
		return fmt.Errorf("failed to get InviteCode by ID=%s: %w", inviteID, err)
	}
	if invite.Data.UsesRemaining != expectedUses {
		return rtdal.ErrConcurrentConflict
	}
	invite.Data.UsesRemaining--
	invite.Data.Active = invite.Data.UsesRemaining > 0
	invite.Data.DtUsed = now
	invite.Data.UsedByMemberID = usedByMemberID
	if invite.Data.UsesRemaining == 0 {
		return tx.Delete(c, invite.Key)
	}
	return tx.Set(c, invite.Record)
}

func (inviteCodeDalgo) DeleteInviteCode(c context.Context, tx dal.ReadwriteTransaction, inviteID string) error {
	return tx.Delete(c, models.NewInviteCodeKey(inviteID))
}
