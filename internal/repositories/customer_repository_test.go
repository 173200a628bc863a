package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-terminal/internal/models"
)

func TestCustomerGetByCardIDOfflineReadsCache(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, "http://127.0.0.1:1")
	require.NoError(t, env.Settings.SetOfflineMode(ctx, true))

	require.NoError(t, env.Store.PutCustomer(ctx, &models.Customer{
		ID: "c1", CardID: "04A1B2C3", Name: "Ada", Balance: 5000,
	}))

	got, err := env.Customers.GetByCardID(ctx, "04:a1:b2:c3")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, int64(5000), got.Balance)
}

func TestCustomerGetByCardIDOnlineMirrorsIntoCache(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.customers["c1"] = models.Customer{ID: "c1", CardID: "04A1B2C3", Name: "Ada", Balance: 2500}
	ts := api.start(t)
	env := newEnv(t, ts.URL)

	got, err := env.Customers.GetByCardID(ctx, "04A1B2C3")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)

	cached, err := env.Store.GetCustomerByCardID(ctx, "04A1B2C3")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, int64(2500), cached.Balance)
}

func TestCustomerReadsFallBackToCacheOnRemoteFailure(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.rejectReads = true
	ts := api.start(t)
	env := newEnv(t, ts.URL)

	require.NoError(t, env.Store.PutCustomer(ctx, &models.Customer{
		ID: "c1", CardID: "04A1B2C3", Name: "Ada", Balance: 1200,
	}))

	// Server is reachable (health passes) but the reads fail; the caller
	// still gets the cached record with no error surfaced.
	got, err := env.Customers.GetByCardID(ctx, "04A1B2C3")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1200), got.Balance)

	byID, err := env.Customers.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Ada", byID.Name)
}

func TestCustomerRegisterOfflineRejected(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, "http://127.0.0.1:1")
	require.NoError(t, env.Settings.SetOfflineMode(ctx, true))

	_, err := env.Customers.Register(ctx, &models.RegisterCustomerRequest{
		CardID: "04A1B2C3", Name: "Ada", Balance: 10,
	})
	require.ErrorIs(t, err, ErrOfflineRegistration)

	// Nothing was cached either.
	all, err := env.Store.GetAllCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCustomerRegisterOnlineMirrors(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	ts := api.start(t)
	env := newEnv(t, ts.URL)

	created, err := env.Customers.Register(ctx, &models.RegisterCustomerRequest{
		CardID: "04A1B2C3", Name: "Ada", Balance: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-c1", created.ID)
	assert.Equal(t, int64(2000), created.Balance)

	cached, err := env.Store.GetCustomerByID(ctx, "srv-c1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, int64(2000), cached.Balance)
}

func TestCustomerUpdateBalanceOfflineAppliesDelta(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, "http://127.0.0.1:1")
	require.NoError(t, env.Settings.SetOfflineMode(ctx, true))

	require.NoError(t, env.Store.PutCustomer(ctx, &models.Customer{
		ID: "c1", CardID: "04A1B2C3", Balance: 1000,
	}))

	got, err := env.Customers.UpdateBalance(ctx, "c1", -2.50)
	require.NoError(t, err)
	assert.Equal(t, int64(750), got.Balance)

	cached, err := env.Store.GetCustomerByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(750), cached.Balance)
}

func TestCustomerUpdateBalanceOfflineUnknownCustomer(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, "http://127.0.0.1:1")
	require.NoError(t, env.Settings.SetOfflineMode(ctx, true))

	_, err := env.Customers.UpdateBalance(ctx, "ghost", 5)
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerUpdateBalanceOnlineMirrorsServerRecord(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.customers["c1"] = models.Customer{ID: "c1", CardID: "04A1B2C3", Balance: 1000}
	ts := api.start(t)
	env := newEnv(t, ts.URL)

	got, err := env.Customers.UpdateBalance(ctx, "c1", 2.5)
	require.NoError(t, err)
	assert.Equal(t, int64(1250), got.Balance)

	cached, err := env.Store.GetCustomerByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, int64(1250), cached.Balance)
}
