package storage

import (
	"context"

	"pancakescope/internal/model"
)

// Storage defines a sink for pass results.
type Storage interface {
	PutPools(ctx context.Context, pass model.Pass, pools []model.PoolInfo) error
}

// Multi fans a result out to several sinks, stopping at the first error.
type Multi []Storage

func (m Multi) PutPools(ctx context.Context, pass model.Pass, pools []model.PoolInfo) error {
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.PutPools(ctx, pass, pools); err != nil {
			return err
		}
	}
	return nil
}
