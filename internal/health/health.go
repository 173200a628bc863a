package health

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"pos-terminal/internal/connectivity"
	"pos-terminal/internal/models"
	"pos-terminal/internal/store"
)

type Checker struct {
	policy *connectivity.Policy
	store  *store.Store
}

type Status struct {
	Status string      `json:"status"`
	API    APIHealth   `json:"api"`
	Store  StoreHealth `json:"store"`
	Device DeviceStats `json:"device"`
}

type APIHealth struct {
	Status        string `json:"status"`
	ResponseTime  int64  `json:"response_time_ms"`
	ManualOffline bool   `json:"manual_offline"`
}

type StoreHealth struct {
	Status              string `json:"status"`
	Customers           int    `json:"customers"`
	PendingTransactions int    `json:"pending_transactions"`
}

type DeviceStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent"`
}

func NewChecker(policy *connectivity.Policy, st *store.Store) *Checker {
	return &Checker{policy: policy, store: st}
}

// CheckBasic reports remote reachability, local cache health and device
// resource usage. The terminal counts as healthy as long as its local store
// works: offline operation is a supported mode, not a failure.
func (c *Checker) CheckBasic(ctx context.Context) Status {
	apiHealth := c.checkAPI(ctx)
	storeHealth := c.checkStore(ctx)

	status := "healthy"
	if storeHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return Status{
		Status: status,
		API:    apiHealth,
		Store:  storeHealth,
		Device: c.deviceStats(),
	}
}

func (c *Checker) checkAPI(ctx context.Context) APIHealth {
	start := time.Now()
	offline := c.policy.ShouldOperateOffline(ctx)
	responseTime := time.Since(start).Milliseconds()

	status := "online"
	if offline {
		status = "offline"
	}
	return APIHealth{
		Status:        status,
		ResponseTime:  responseTime,
		ManualOffline: c.policy.IsOfflineMode(),
	}
}

func (c *Checker) checkStore(ctx context.Context) StoreHealth {
	customers, err := c.store.GetAllCustomers(ctx)
	if err != nil {
		return StoreHealth{Status: "unhealthy"}
	}
	transactions, err := c.store.GetAllTransactions(ctx)
	if err != nil {
		return StoreHealth{Status: "unhealthy"}
	}

	pending := 0
	for _, tx := range transactions {
		if tx.OfflineCreated && tx.Status == models.TxStatusPending {
			pending++
		}
	}
	return StoreHealth{
		Status:              "healthy",
		Customers:           len(customers),
		PendingTransactions: pending,
	}
}

func (c *Checker) deviceStats() DeviceStats {
	stats := DeviceStats{}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
	}
	return stats
}
