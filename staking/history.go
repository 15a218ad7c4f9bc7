// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package staking

import "math/big"

// DefaultHistoryDepth bounds each channel below to the most recent N
// entries, matching the teacher's preference for fixed-capacity
// in-memory ring buffers over unbounded history.
const DefaultHistoryDepth = 4096

// GlobalRateEntry is one (height, global_rate) history tuple.
type GlobalRateEntry struct {
	Height uint64
	Rate   *big.Rat
}

// DelegationEntry is one (pubkey, height, amount) history tuple, used for
// both the self-delegation and total-delegation channels.
type DelegationEntry struct {
	PubKey []byte
	Height uint64
	Amount uint64
}

// RewardEntry is one (delegator_pk, height, reward_detail) history tuple.
type RewardEntry struct {
	Delegator []byte
	Height    uint64
	Amount    uint64
}

// History holds the four bounded channels StakingEngine pushes to at
// end-of-block and ApiCache drains after commit.
type History struct {
	depth int

	globalRate      []GlobalRateEntry
	selfDelegation  []DelegationEntry
	totalDelegation []DelegationEntry
	rewardDetail    []RewardEntry
}

func NewHistory(depth int) *History {
	return &History{depth: depth}
}

func (h *History) PushGlobalRate(height uint64, rate *big.Rat) {
	h.globalRate = appendBounded(h.globalRate, GlobalRateEntry{Height: height, Rate: rate}, h.depth)
}

func (h *History) PushSelfDelegation(pubKey []byte, height uint64, amount uint64) {
	h.selfDelegation = appendBounded(h.selfDelegation, DelegationEntry{PubKey: pubKey, Height: height, Amount: amount}, h.depth)
}

func (h *History) PushTotalDelegation(pubKey []byte, height uint64, amount uint64) {
	h.totalDelegation = appendBounded(h.totalDelegation, DelegationEntry{PubKey: pubKey, Height: height, Amount: amount}, h.depth)
}

func (h *History) PushRewardDetail(delegator []byte, height uint64, amount uint64) {
	h.rewardDetail = appendBounded(h.rewardDetail, RewardEntry{Delegator: delegator, Height: height, Amount: amount}, h.depth)
}

// DrainGlobalRate returns and clears the accumulated global-rate entries,
// the interface ApiCache's post-commit hook consumes through.
func (h *History) DrainGlobalRate() []GlobalRateEntry {
	out := h.globalRate
	h.globalRate = nil
	return out
}

func (h *History) DrainSelfDelegation() []DelegationEntry {
	out := h.selfDelegation
	h.selfDelegation = nil
	return out
}

func (h *History) DrainTotalDelegation() []DelegationEntry {
	out := h.totalDelegation
	h.totalDelegation = nil
	return out
}

func (h *History) DrainRewardDetail() []RewardEntry {
	out := h.rewardDetail
	h.rewardDetail = nil
	return out
}

func appendBounded[T any](slice []T, entry T, depth int) []T {
	slice = append(slice, entry)
	if depth > 0 && len(slice) > depth {
		slice = slice[len(slice)-depth:]
	}
	return slice
}
