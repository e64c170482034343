package collector

import (
	"context"
	"errors"

	"github.com/OldStager01/host-sentinel/pkg/models"
)

var (
	ErrCollectionFailed = errors.New("snapshot collection failed")
	ErrTimeout          = errors.New("collection timeout")
)

// Collector produces one raw snapshot per call. Readings a source cannot
// provide are marked unavailable rather than failing the whole call.
type Collector interface {
	Collect(ctx context.Context) (*models.RawSnapshot, error)

	// HealthCheck verifies the collector can reach its data source
	HealthCheck(ctx context.Context) error

	Close() error
}
