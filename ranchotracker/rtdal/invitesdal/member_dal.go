package invitesdal

import (
	"context"
	"fmt"

	"github.com/dal-go/dalgo/dal"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal"
)

type memberDalgo struct {
}

var _ rtdal.MemberDal = (*memberDalgo)(nil)

func (memberDalgo) CreateMember(c context.Context, tx dal.ReadwriteTransaction, memberID string, data *models.MemberData) (member models.Member, err error) {
	if err = data.Validate(); err != nil {
		return member, fmt.Errorf("invalid member record: %w", err)
	}
	member = models.NewMember(memberID, data)
	if err = tx.Insert(c, member.Record); err != nil {
		return member, fmt.Errorf("failed to insert Member record: %w", err)
	}
	return member, nil
}

func (memberDalgo) GetMemberByID(c context.Context, tx dal.ReadSession, memberID string) (member models.Member, err error) {
	if tx == nil {
		if tx, err = getReadSession(c); err != nil {
			return
		}
	}
	member = models.NewMember(memberID, nil)
	return member, tx.Get(c, member.Record)
}

func (memberDalgo) SaveMember(c context.Context, tx dal.ReadwriteTransaction, member models.Member) error {
	if err := member.Data.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid member record: %w", err)
	}
	return tx.Set(c, member.Record)
}

func (memberDalgo) DeleteMember(c context.Context, tx dal.ReadwriteTransaction, memberID string) error {
	return tx.Delete(c, models.NewMemberKey(memberID))
}
