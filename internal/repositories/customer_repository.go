package repositories

import (
	"context"
	"log"

	"pos-terminal/internal/connectivity"
	"pos-terminal/internal/gateway"
	"pos-terminal/internal/models"
	"pos-terminal/internal/store"
	"pos-terminal/pkg/utils"
)

// CustomerRepository merges the remote gateway and the local cache behind one
// lookup/update contract. Reads fall back to the cache silently when the
// gateway fails; only registration surfaces gateway errors to the caller.
type CustomerRepository struct {
	Gateway *gateway.Gateway
	Store   *store.Store
	Policy  *connectivity.Policy
}

func NewCustomerRepository(gw *gateway.Gateway, st *store.Store, policy *connectivity.Policy) *CustomerRepository {
	return &CustomerRepository{Gateway: gw, Store: st, Policy: policy}
}

func (r *CustomerRepository) GetByCardID(ctx context.Context, cardID string) (*models.Customer, error) {
	cardID = utils.NormalizeCardID(cardID)
	if r.Policy.ShouldOperateOffline(ctx) {
		return r.Store.GetCustomerByCardID(ctx, cardID)
	}

	customer, err := r.Gateway.GetCustomerByCardID(ctx, cardID)
	if err != nil {
		log.Printf("[CustomerRepo] remote lookup by card failed, using cache: %v", err)
		return r.Store.GetCustomerByCardID(ctx, cardID)
	}
	r.mirror(ctx, customer)
	return customer, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	if r.Policy.ShouldOperateOffline(ctx) {
		return r.Store.GetCustomerByID(ctx, id)
	}

	customer, err := r.Gateway.GetCustomer(ctx, id)
	if err != nil {
		log.Printf("[CustomerRepo] remote lookup by id failed, using cache: %v", err)
		return r.Store.GetCustomerByID(ctx, id)
	}
	r.mirror(ctx, customer)
	return customer, nil
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]models.Customer, error) {
	if r.Policy.ShouldOperateOffline(ctx) {
		return r.Store.GetAllCustomers(ctx)
	}

	customers, err := r.Gateway.ListCustomers(ctx)
	if err != nil {
		log.Printf("[CustomerRepo] remote list failed, using cache: %v", err)
		return r.Store.GetAllCustomers(ctx)
	}
	if err := r.Store.ReplaceAllCustomers(ctx, customers); err != nil {
		log.Printf("[CustomerRepo] cache mirror failed: %v", err)
	}
	return customers, nil
}

// Register is online-only: there is no offline queue for customer creation.
func (r *CustomerRepository) Register(ctx context.Context, req *models.RegisterCustomerRequest) (*models.Customer, error) {
	if r.Policy.ShouldOperateOffline(ctx) {
		return nil, ErrOfflineRegistration
	}

	customer, err := r.Gateway.RegisterCustomer(ctx, req)
	if err != nil {
		return nil, err
	}
	r.mirror(ctx, customer)
	return customer, nil
}

// UpdateBalance applies a balance delta. amount is a decimal in major units;
// it is converted to cents before anything else happens. Online, the server's
// resulting record is authoritative and mirrored; offline (or on gateway
// failure) the delta is applied directly to the cached record.
func (r *CustomerRepository) UpdateBalance(ctx context.Context, id string, amount float64) (*models.Customer, error) {
	cents := utils.AmountToCents(amount)

	if r.Policy.ShouldOperateOffline(ctx) {
		return r.applyLocalDelta(ctx, id, cents)
	}

	customer, err := r.Gateway.UpdateBalance(ctx, id, cents)
	if err != nil {
		log.Printf("[CustomerRepo] remote balance update failed, applying locally: %v", err)
		return r.applyLocalDelta(ctx, id, cents)
	}
	r.mirror(ctx, customer)
	return customer, nil
}

func (r *CustomerRepository) applyLocalDelta(ctx context.Context, id string, cents int64) (*models.Customer, error) {
	customer, err := r.Store.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	customer.Balance += cents
	if err := r.Store.PutCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// mirror writes a fetched record into the cache; a cache failure never fails
// the operation that produced the record.
func (r *CustomerRepository) mirror(ctx context.Context, customer *models.Customer) {
	if customer == nil {
		return
	}
	if err := r.Store.PutCustomer(ctx, customer); err != nil {
		log.Printf("[CustomerRepo] cache mirror failed: %v", err)
	}
}
