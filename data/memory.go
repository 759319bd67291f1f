package data

import (
	"context"

	"github.com/ncobase/qeonaru/config"
	"github.com/ncobase/qeonaru/data/repository"
	"github.com/ncobase/qeonaru/logging/logger"
)

type memoryDriver struct{}

func (memoryDriver) Name() string { return config.DriverMemory }

func (memoryDriver) Open(ctx context.Context, _ *config.Data, log *logger.Logger) (Backend, error) {
	log.Warn(ctx, "using in-memory store, data is lost on exit")
	return &memoryBackend{repository.NewMemoryStore()}, nil
}

type memoryBackend struct {
	*repository.MemoryStore
}

func (memoryBackend) Ping(ctx context.Context) error { return ctx.Err() }
func (memoryBackend) Close(context.Context) error    { return nil }

func init() {
	RegisterDriver(memoryDriver{})
}
