package facade

import (
	"context"
	"time"

	"github.com/rancho-co/ranchotracker-go/ranchotracker/models"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal/dalmocks"
)

func SetupMocks(c context.Context) *dalmocks.MockDB {
	mockDB := dalmocks.NewMockDB()

	mockDB.MemberMock.Members["owner-1"] = &models.MemberData{
		Name:      "Alfredo Alonso",
		Role:      models.RoleAdmin,
		TenantID:  "owner-1",
		DtCreated: time.Now(),
	}

	return mockDB
}
