package storage

import (
	"errors"
	"fmt"
	"strings"
)

// DriverMinIO selects the MinIO backend.
const DriverMinIO = "minio"

// ErrUnknownDriver indicates an unsupported storage driver.
var ErrUnknownDriver = errors.New("storage: unknown driver")

// FactoryOptions groups configuration for storage drivers.
type FactoryOptions struct {
	// MinIO configures the MinIO backend.
	MinIO MinIOOptions
}

// NewFromDriver constructs a Storage implementation by driver name.
func NewFromDriver(driver string, opts FactoryOptions) (Storage, error) {
	switch strings.ToLower(driver) {
	case DriverMinIO:
		return NewMinIO(opts.MinIO)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
