package repositories

import "errors"

var ErrOfflineRegistration = errors.New("customer registration requires an online connection")
var ErrSyncRequiresOnline = errors.New("sync requires an online connection")
var ErrCustomerNotFound = errors.New("customer not found")
