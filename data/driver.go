package data

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ncobase/qeonaru/config"
	"github.com/ncobase/qeonaru/data/repository"
	"github.com/ncobase/qeonaru/logging/logger"
)

// Backend is an opened store exposing the three collections.
type Backend interface {
	Users() repository.UserRepository
	Posts() repository.PostRepository
	Comments() repository.CommentRepository

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close(ctx context.Context) error
}

// Driver opens a Backend from configuration.
// Drivers register themselves using init() functions and are looked up by
// the data.driver setting.
type Driver interface {
	// Name returns the driver identifier (e.g., "mongodb", "memory")
	Name() string

	// Open establishes the store. The returned backend is ready for use.
	Open(ctx context.Context, cfg *config.Data, log *logger.Logger) (Backend, error)
}

var (
	drivers   = make(map[string]Driver)
	driversMu sync.RWMutex
)

// RegisterDriver makes a driver available by the provided name.
//
// If RegisterDriver is called twice with the same name or if driver is nil,
// it panics.
func RegisterDriver(driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()

	if driver == nil {
		panic("data: RegisterDriver driver is nil")
	}

	name := driver.Name()
	if name == "" {
		panic("data: RegisterDriver driver name is empty")
	}

	if _, exists := drivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterDriver called twice for driver %s", name))
	}

	drivers[name] = driver
}

// GetDriver retrieves a registered driver by name.
func GetDriver(name string) (Driver, error) {
	driversMu.RLock()
	defer driversMu.RUnlock()

	driver, exists := drivers[name]
	if !exists {
		return nil, fmt.Errorf("data: driver %q not registered (available: %v)", name, listDriversLocked())
	}
	return driver, nil
}

// ListDrivers returns the names of every registered driver, sorted.
func ListDrivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	return listDriversLocked()
}

func listDriversLocked() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
