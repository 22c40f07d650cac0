package service_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/finhive/gstdesk/internal/client/domain"
	clientrepo "github.com/finhive/gstdesk/internal/client/repository"
	clientservice "github.com/finhive/gstdesk/internal/client/service"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) clientdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&clientdomain.Client{}))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	return clientservice.New(clientservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  clientrepo.Provide(),
	})
}

func TestCreate_DerivesStateCode(t *testing.T) {
	svc := newService(t)

	client, err := svc.Create(context.Background(), clientdomain.CreateClientRequest{
		Name:  "Trident Exports",
		Gstin: "24AACCF1234B1Z4",
	})
	require.NoError(t, err)

	assert.Equal(t, "24", client.StateCode)
	assert.Equal(t, clientdomain.FilingMonthly, client.FilingFrequency)
	assert.NotZero(t, client.ID)
}

func TestCreate_NormalizesGstin(t *testing.T) {
	svc := newService(t)

	client, err := svc.Create(context.Background(), clientdomain.CreateClientRequest{
		Name:  "Trident Exports",
		Gstin: "  24aaccf1234b1z4 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "24AACCF1234B1Z4", client.Gstin)
}

func TestCreate_RejectsBadGstin(t *testing.T) {
	svc := newService(t)

	cases := []string{
		"",
		"24AACCF1234B1Z",    // 14 chars
		"99AACCF1234B1Z4",   // state code out of range
		"24AACCF1234B1X4",   // missing Z marker
		"24AACCF1234B1Z4X5", // too long
	}
	for _, gstin := range cases {
		_, err := svc.Create(context.Background(), clientdomain.CreateClientRequest{
			Name:  "Trident Exports",
			Gstin: gstin,
		})
		assert.ErrorIs(t, err, clientdomain.ErrInvalidGstin, "gstin %q", gstin)
	}
}

func TestCreate_DuplicateGstin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, clientdomain.CreateClientRequest{
		Name: "Trident Exports", Gstin: "24AACCF1234B1Z4",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, clientdomain.CreateClientRequest{
		Name: "Trident Exports Again", Gstin: "24AACCF1234B1Z4",
	})
	assert.ErrorIs(t, err, clientdomain.ErrGstinExists)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, clientdomain.CreateClientRequest{
		Name: "Trident Exports", Gstin: "24AACCF1234B1Z4", Email: "old@example.com",
	})
	require.NoError(t, err)

	name := "Trident Exports Pvt Ltd"
	freq := clientdomain.FilingQuarterly
	updated, err := svc.Update(ctx, clientdomain.UpdateClientRequest{
		ID:              created.ID.String(),
		Name:            &name,
		FilingFrequency: &freq,
	})
	require.NoError(t, err)

	assert.Equal(t, name, updated.Name)
	assert.Equal(t, freq, updated.FilingFrequency)
	assert.Equal(t, "old@example.com", updated.Email)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.GetByID(context.Background(), "123456789")
	assert.ErrorIs(t, err, clientdomain.ErrNotFound)

	_, err = svc.GetByID(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, clientdomain.ErrInvalidID)
}
