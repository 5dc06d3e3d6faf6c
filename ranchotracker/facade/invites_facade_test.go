package facade

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/common"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
)

func TestCreateInviteCode(t *testing.T) {
	SetupMocks(context.Background())
	c := context.Background()
	is := is.New(t)

	invite, err := Invites.CreateInviteCode(c, CreateInviteCodeRequest{
		IssuerID:  "owner-1",
		RoleType:  models.RoleEmpleado,
		UsesTotal: 3,
	})
	is.NoErr(err)
	is.True(invite.ID != "")
	is.Equal(len(invite.Data.Code), common.DefaultInviteCodeLength)
	is.Equal(invite.Data.IssuerID, "owner-1")
	is.Equal(invite.Data.RoleType, models.RoleEmpleado)
	is.True(invite.Data.Active)
	is.Equal(invite.Data.UsesRemaining, 3)
	is.Equal(invite.Data.UsesTotal, 3)

	// Default TTL is applied when not specified.
	expectedExpiry := time.Now().AddDate(0, 0, DefaultInviteTTLDays)
	if invite.Data.DtExpires.Before(expectedExpiry.Add(-time.Minute)) || invite.Data.DtExpires.After(expectedExpiry.Add(time.Minute)) {
		t.Errorf("DtExpires should be ~%d days out, got %v", DefaultInviteTTLDays, invite.Data.DtExpires)
	}
}

func TestCreateInviteCodeNeverExpires(t *testing.T) {
	SetupMocks(context.Background())
	c := context.Background()
	is := is.New(t)

	invite, err := Invites.CreateInviteCode(c, CreateInviteCodeRequest{
		IssuerID:  "owner-1",
		RoleType:  models.RoleVeterinario,
		UsesTotal: 1,
		TTLDays:   -1,
	})
	is.NoErr(err)
	is.True(invite.Data.DtExpires.IsZero())
}

func TestCreateInviteCodePersonalized(t *testing.T) {
	SetupMocks(context.Background())
	c := context.Background()
	is := is.New(t)

	invite, err := Invites.CreateInviteCode(c, CreateInviteCodeRequest{
		IssuerID:   "owner-1",
		RoleType:   models.RoleSupervisor,
		UsesTotal:  5,
		CodeLength: 10,
	})
	is.NoErr(err)
	is.Equal(len(invite.Data.Code), 10)
	for _, r := range invite.Data.Code {
		if r >= 'a' && r <= 'z' {
			t.Errorf("Personalized code should not contain lower case chars: %s", invite.Data.Code)
			break
		}
	}
}

func TestCreateInviteCodeValidation(t *testing.T) {
	SetupMocks(context.Background())
	c := context.Background()

	for name, req := range map[string]CreateInviteCodeRequest{
		"missing issuer":    {RoleType: models.RoleEmpleado, UsesTotal: 1},
		"missing role type": {IssuerID: "owner-1", UsesTotal: 1},
		"unknown role type": {IssuerID: "owner-1", RoleType: "ganadero", UsesTotal: 1},
		"zero uses":         {IssuerID: "owner-1", RoleType: models.RoleEmpleado},
		"negative uses":     {IssuerID: "owner-1", RoleType: models.RoleEmpleado, UsesTotal: -2},
		"code too long":     {IssuerID: "owner-1", RoleType: models.RoleEmpleado, UsesTotal: 1, CodeLength: 13},
	} {
		if _, err := Invites.CreateInviteCode(c, req); err == nil {
			t.Errorf("Expected error for %s", name)
		}
	}
}

func TestCreateInviteCodeGenerationExhausted(t *testing.T) {
	SetupMocks(context.Background())
	c := context.Background()
	is := is.New(t)

	defer func(original func(int) string) { randomCode = original }(randomCode)
	randomCode = func(n int) string { return "SAMECD" }

	_, err := Invites.CreateInviteCode(c, CreateInviteCodeRequest{
		IssuerID:  "owner-1",
		RoleType:  models.RoleEmpleado,
		UsesTotal: 1,
	})
	is.NoErr(err)

	_, err = Invites.CreateInviteCode(c, CreateInviteCodeRequest{
		IssuerID:  "owner-1",
		RoleType:  models.RoleEmpleado,
		UsesTotal: 1,
	})
	is.Equal(err, ErrGenerationExhausted)
}

func TestListInviteCodes(t *testing.T) {
	SetupMocks(context.Background())
	c := context.Background()
	is := is.New(t)

	for i := 0; i < 3; i++ {
		_, err := Invites.CreateInviteCode(c, CreateInviteCodeRequest{
			IssuerID:  "owner-1",
			RoleType:  models.RoleEmpleado,
			UsesTotal: 1,
		})
		is.NoErr(err)
	}
	_, err := Invites.CreateInviteCode(c, CreateInviteCodeRequest{
		IssuerID:  "owner-2",
		RoleType:  models.RoleEmpleado,
		UsesTotal: 1,
	})
	is.NoErr(err)

	invites, err := Invites.ListInviteCodes(c, "owner-1")
	is.NoErr(err)
	is.Equal(len(invites), 3)
	for _, invite := range invites {
		is.Equal(invite.Data.IssuerID, "owner-1")
	}
}

func TestRevokeInviteCode(t *testing.T) {
	mockDB := SetupMocks(context.Background())
	c := context.Background()
	is := is.New(t)

	invite, err := Invites.CreateInviteCode(c, CreateInviteCodeRequest{
		IssuerID:  "owner-1",
		RoleType:  models.RoleEmpleado,
		UsesTotal: 5,
	})
	is.NoErr(err)

	is.NoErr(Invites.RevokeInviteCode(c, "owner-1", invite.ID))

	revoked := mockDB.InviteMock.Invites[invite.ID]
	is.True(revoked != nil) // revoking keeps the record
	is.True(!revoked.Active)
	is.Equal(revoked.UsesRemaining, 0)

	// Revoking again is a no-op.
	is.NoErr(Invites.RevokeInviteCode(c, "owner-1", invite.ID))

	// A revoked code is no longer redeemable.
	err = Invites.CheckInviteCode(c, invite.Data.Code)
	is.Equal(err, ErrInviteNotFound)
}

func TestRevokeInviteCodeNotOwn(t *testing.T) {
	SetupMocks(context.Background())
	c := context.Background()
	is := is.New(t)

	invite, err := Invites.CreateInviteCode(c, CreateInviteCodeRequest{
		IssuerID:  "owner-1",
		RoleType:  models.RoleEmpleado,
		UsesTotal: 1,
	})
	is.NoErr(err)

	err = Invites.RevokeInviteCode(c, "owner-2", invite.ID)
	is.Equal(err, ErrNotInviteIssuer)
}

func TestDeleteInviteCode(t *testing.T) {
	mockDB := SetupMocks(context.Background())
	c := context.Background()
	is := is.New(t)

	invite, err := Invites.CreateInviteCode(c, CreateInviteCodeRequest{
		IssuerID:  "owner-1",
		RoleType:  models.RoleEmpleado,
		UsesTotal: 1,
	})
	is.NoErr(err)

	is.NoErr(Invites.DeleteInviteCode(c, "owner-1", invite.ID))
	if _, ok := mockDB.InviteMock.Invites[invite.ID]; ok {
		t.Error("Invite code record should be deleted")
	}

	err = Invites.DeleteInviteCode(c, "owner-2", invite.ID)
	is.True(err != nil) // already deleted
}
