// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package reward_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/findora-network/ledgercore/staking/reward"
)

func TestGlobalRateDecaysWithStakedFraction(t *testing.T) {
	require := require.New(t)

	c := reward.NewCalculator(reward.Config{MaxRateNum: 2000, MinRateNum: 200})

	zero := c.GlobalRate(0, 1_000_000)
	full := c.GlobalRate(1_000_000, 1_000_000)

	require.Equal(big.NewRat(2000, reward.RateDenominator), zero)
	require.Equal(big.NewRat(200, reward.RateDenominator), full)
}

func TestGlobalRateNoSupplyReturnsMax(t *testing.T) {
	c := reward.NewCalculator(reward.Config{MaxRateNum: 2000, MinRateNum: 200})
	require.Equal(t, big.NewRat(2000, reward.RateDenominator), c.GlobalRate(0, 0))
}

func TestFixedCalculator(t *testing.T) {
	f := reward.Fixed{RateNum: 1000}
	require.Equal(t, big.NewRat(1000, reward.RateDenominator), f.GlobalRate(12345, 999))
}
