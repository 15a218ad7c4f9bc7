// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PendingCounter reports how many transactions are waiting in the
// in-flight block, so RunLoop can skip empty heights.
type PendingCounter interface {
	PendingCount() int
}

// RunLoop drives a single-node block cadence against adapter: every
// interval, if any transaction is pending, it closes the current block and
// opens the next one. External multi-validator deployments do not use
// this loop; they call Adapter's methods directly from their own ABCI
// bridge instead.
func RunLoop(ctx context.Context, adapter Adapter, pending PendingCounter, height uint64, interval time.Duration, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if err := adapter.BeginBlock(height); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if pending.PendingCount() == 0 {
				continue
			}
			newHeight, err := adapter.EndBlock()
			if err != nil {
				log.Error("block production failed", zap.Error(err))
				continue
			}
			if _, err := adapter.Commit(); err != nil {
				log.Error("commit failed", zap.Error(err))
				continue
			}
			if err := adapter.BeginBlock(newHeight + 1); err != nil {
				log.Error("begin_block failed", zap.Error(err))
				continue
			}
		}
	}
}
