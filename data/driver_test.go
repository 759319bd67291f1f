package data

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ncobase/qeonaru/config"
	"github.com/ncobase/qeonaru/logging/logger"
)

type mockDriver struct {
	name string
	err  error
}

func (d *mockDriver) Name() string { return d.name }
func (d *mockDriver) Open(ctx context.Context, cfg *config.Data, log *logger.Logger) (Backend, error) {
	if d.err != nil {
		return nil, d.err
	}
	return memoryDriver{}.Open(ctx, cfg, log)
}

func TestBuiltinDriversRegistered(t *testing.T) {
	names := ListDrivers()
	for _, want := range []string{config.DriverMemory, config.DriverMongoDB} {
		if !slices.Contains(names, want) {
			t.Errorf("driver %q not registered: %v", want, names)
		}
	}
}

func TestRegisterDriver(t *testing.T) {
	RegisterDriver(&mockDriver{name: "test-register"})

	retrieved, err := GetDriver("test-register")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if retrieved.Name() != "test-register" {
		t.Errorf("expected driver name 'test-register', got %q", retrieved.Name())
	}
}

func TestRegisterDriverPanics(t *testing.T) {
	tests := []struct {
		name   string
		driver Driver
	}{
		{"nil", nil},
		{"empty name", &mockDriver{}},
		{"duplicate", &mockDriver{name: config.DriverMemory}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("expected panic")
				}
			}()
			RegisterDriver(tt.driver)
		})
	}
}

func TestGetDriverUnknown(t *testing.T) {
	_, err := GetDriver("cassandra")
	if err == nil || !strings.Contains(err.Error(), "cassandra") {
		t.Fatalf("err = %v", err)
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	log := logger.Discard()

	d, err := New(ctx, &config.Data{Driver: config.DriverMemory}, log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Close()

	if d.Driver() != config.DriverMemory || d.Users == nil || d.Posts == nil || d.Comments == nil {
		t.Fatalf("incomplete data: %+v", d)
	}
	if err := d.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	RegisterDriver(&mockDriver{name: "test-failing", err: errors.New("boom")})
	if _, err := New(ctx, &config.Data{Driver: "test-failing"}, log); err == nil {
		t.Fatal("expected open error")
	}
	if _, err := New(ctx, nil, log); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestMongoDriverRequiresURI(t *testing.T) {
	_, err := New(context.Background(), &config.Data{Driver: config.DriverMongoDB, MongoDB: &config.MongoDB{}}, logger.Discard())
	if err == nil {
		t.Fatal("expected error for empty uri")
	}
}

func TestHealth(t *testing.T) {
	d := NewMemory()

	report, ok := d.Health(context.Background())
	if !ok || report["status"] != "healthy" {
		t.Fatalf("report = %v", report)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, ok = d.Health(ctx)
	if ok || report["status"] != "unavailable" {
		t.Fatalf("report = %v", report)
	}
}
