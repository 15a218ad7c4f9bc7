// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

// Noop is a Metrics that discards every observation, for tests and CLI
// subcommands that talk to the HTTP surface and never run a node loop.
type Noop struct{}

func (Noop) IncBlocksCommitted()            {}
func (Noop) IncTransactionsRejected(string) {}
func (Noop) IncTransactionsCommitted()      {}
func (Noop) SetStakedSupply(uint64)         {}
func (Noop) SetValidatorCount(int)          {}
func (Noop) ObserveBlockHeight(uint64)      {}

var _ Metrics = Noop{}
