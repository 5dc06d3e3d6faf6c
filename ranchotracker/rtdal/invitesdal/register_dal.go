package invitesdal

import (
	"context"
	"errors"

	"github.com/dal-go/dalgo/dal"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal"
)

var appDB dal.Database

// RegisterDal wires the document-store implementations into the rtdal
// singletons. Call once at application startup with the app database.
func RegisterDal(db dal.Database) {
	appDB = db
	rtdal.DB = database{db: db}
	rtdal.Invite = inviteCodeDalgo{}
	rtdal.InviteClaim = inviteClaimDalgo{}
	rtdal.Member = memberDalgo{}
}

func getReadSession(_ context.Context) (dal.ReadSession, error) {
	if appDB == nil {
		return nil, errors.New("invitesdal is not registered: call invitesdal.RegisterDal first")
	}
	return appDB, nil
}

type database struct {
	db dal.Database
}

func (d database) RunInTransaction(c context.Context, f func(c context.Context, tx dal.ReadwriteTransaction) error) error {
	return d.db.RunReadwriteTransaction(c, f)
}
