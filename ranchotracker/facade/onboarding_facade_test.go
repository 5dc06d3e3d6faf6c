package facade

import (
	"context"
	"testing"

	"github.com/matryer/is"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
)

func TestSignUpWithInviteCode(t *testing.T) {
	mockDB := SetupMocks(context.Background())
	c := context.Background()
	is := is.New(t)

	invite, err := Invites.CreateInviteCode(c, CreateInviteCodeRequest{
		IssuerID:  "owner-1",
		RoleType:  models.RoleVeterinario,
		UsesTotal: 2,
	})
	is.NoErr(err)

	result, err := Onboarding.SignUpWithInviteCode(c, invite.Data.Code, MemberProfile{
		Name:  "Benita Bravo",
		Email: "benita@example.com",
	})
	is.NoErr(err)

	member := result.Member
	is.True(member.ID != "")
	is.Equal(member.Data.Name, "Benita Bravo")
	is.Equal(member.Data.Role, models.RoleVeterinario)
	is.Equal(member.Data.TenantID, "owner-1") // joins the issuer's ranch
	is.Equal(member.Data.InvitedByMemberID, "owner-1")
	is.Equal(member.Data.Permissions, []string{
		models.PermissionRead, models.PermissionCreate, models.PermissionUpdate,
		models.PermissionManageAnimals, models.PermissionRecordHealth, models.PermissionViewMedicalReports,
	})

	is.True(result.Redemption != nil)
	is.Equal(result.Redemption.InviteID, invite.ID)
	is.Equal(result.Redemption.UsesRemaining, 1)
	is.Equal(mockDB.InviteMock.Invites[invite.ID].UsesRemaining, 1)

	if _, ok := mockDB.MemberMock.Members[member.ID]; !ok {
		t.Error("Member record should be stored")
	}
}

func TestSignUpWithInviteCodeRejected(t *testing.T) {
	mockDB := SetupMocks(context.Background())
	c := context.Background()
	is := is.New(t)

	_, err := Onboarding.SignUpWithInviteCode(c, "NOSUCH", MemberProfile{Name: "Carlos Cano"})
	is.Equal(err, ErrInviteNotFound)
	is.Equal(len(mockDB.MemberMock.Members), 1) // only the seeded owner

	_, err = Onboarding.SignUpWithInviteCode(c, "NOSUCH", MemberProfile{})
	is.True(err != nil) // name is required
}

func TestSignUpWithInviteCodeCompensation(t *testing.T) {
	mockDB := SetupMocks(context.Background())
	c := context.Background()
	is := is.New(t)

	invite, err := Invites.CreateInviteCode(c, CreateInviteCodeRequest{
		IssuerID:  "owner-1",
		RoleType:  models.RoleEmpleado,
		UsesTotal: 1,
	})
	is.NoErr(err)

	// Force the redemption to fail after the member record was created.
	mockDB.ClaimMock.FailInsertClaim = true

	_, err = Onboarding.SignUpWithInviteCode(c, invite.Data.Code, MemberProfile{Name: "Diego Diaz"})
	is.True(err != nil)

	// The half-onboarded member must not survive.
	is.Equal(len(mockDB.MemberMock.Members), 1) // only the seeded owner
}

func TestSignUpAsOwner(t *testing.T) {
	mockDB := SetupMocks(context.Background())
	c := context.Background()
	is := is.New(t)

	result, err := Onboarding.SignUpAsOwner(c, MemberProfile{
		Name:  "Elena Estrada",
		Phone: "+521234567890",
	})
	is.NoErr(err)

	member := result.Member
	is.True(member.ID != "")
	is.Equal(member.Data.Role, models.RoleAdmin)
	is.Equal(member.Data.TenantID, member.ID) // an owner is their own tenant root
	is.Equal(member.Data.Permissions, models.AdminPermissions())
	is.True(result.Redemption == nil)

	starter := result.StarterInvite
	is.True(starter != nil)
	is.Equal(starter.Data.IssuerID, member.ID)
	is.Equal(starter.Data.RoleType, models.RoleEmpleado)
	is.Equal(starter.Data.UsesTotal, StarterInviteUses)
	is.True(starter.Data.Active)

	if _, ok := mockDB.InviteMock.Invites[starter.ID]; !ok {
		t.Error("Starter invite code should be stored")
	}
}

func TestSignUpAsOwnerRequiresName(t *testing.T) {
	SetupMocks(context.Background())
	c := context.Background()

	if _, err := Onboarding.SignUpAsOwner(c, MemberProfile{}); err == nil {
		t.Error("Expected error for missing name")
	}
}
