// Package data owns the datastore handle shared by every request.
//
// The handle is opened once at process start with New and closed on
// shutdown; services receive the *Data and reach the collections through
// its repositories.
package data

import (
	"context"
	"fmt"
	"time"

	"github.com/ncobase/qeonaru/config"
	"github.com/ncobase/qeonaru/data/repository"
	"github.com/ncobase/qeonaru/logging/logger"
)

// Data encapsulates all data layer dependencies.
type Data struct {
	backend  Backend
	driver   string
	Users    repository.UserRepository
	Posts    repository.PostRepository
	Comments repository.CommentRepository
}

// New opens the store selected by cfg.Driver.
func New(ctx context.Context, cfg *config.Data, log *logger.Logger) (*Data, error) {
	if cfg == nil {
		return nil, fmt.Errorf("data: configuration is nil")
	}
	driver, err := GetDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	backend, err := driver.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return wrap(driver.Name(), backend), nil
}

// NewMemory returns a Data backed by a fresh in-memory store.
func NewMemory() *Data {
	return wrap(config.DriverMemory, &memoryBackend{repository.NewMemoryStore()})
}

func wrap(driver string, b Backend) *Data {
	return &Data{
		backend:  b,
		driver:   driver,
		Users:    b.Users(),
		Posts:    b.Posts(),
		Comments: b.Comments(),
	}
}

// Driver returns the name of the driver that opened the store.
func (d *Data) Driver() string {
	return d.driver
}

// Ping verifies the store is reachable.
func (d *Data) Ping(ctx context.Context) error {
	return d.backend.Ping(ctx)
}

// Close closes the store.
func (d *Data) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.backend.Close(ctx)
}
