// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"math/rand"
	"testing"

	"github.com/bitlib/txbuild/wallet/txrules"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

// TestByAge checks that coins are ordered from the lowest height, that
// unconfirmed coins come last and that other scripts are skipped.
func TestByAge(t *testing.T) {
	t.Parallel()

	key := newTestKey(t, 1)
	pool := []Coin{
		key.coin(0, 5, 1000),
		key.coin(1, UnconfirmedHeight, 1000),
		scriptHashCoin(t, 2, 0, 1000),
		key.coin(3, 1, 1000),
		key.coin(4, 5, 1000),
	}

	require.Equal(t, []int{3, 0, 4, 1}, byAge(pool))
}

// TestSelectByAge checks the accumulation of the oldest coins.
func TestSelectByAge(t *testing.T) {
	t.Parallel()

	key := newTestKey(t, 1)
	pool := []Coin{
		key.coin(0, 4, 50_000),
		key.coin(1, 3, 20_000),
		key.coin(2, 2, 3_000),
		key.coin(3, 1, 2_000),
		scriptHashCoin(t, 4, 0, 1_000_000),
	}

	tests := []struct {
		name      string
		outputSum btcutil.Amount
		feeRate   btcutil.Amount
		want      []wire.OutPoint
		wantFee   btcutil.Amount
		wantErr   *InsufficientFundsError
	}{
		{
			name:      "oldest coin suffices",
			outputSum: 500,
			feeRate:   1000,
			want:      outPoints(pool[3:4]),
			wantFee:   1000,
		},
		{
			name:      "three oldest coins",
			outputSum: 10_000,
			feeRate:   1000,
			want: []wire.OutPoint{
				pool[3].OutPoint, pool[2].OutPoint,
				pool[1].OutPoint,
			},
			wantFee: 1000,
		},
		{
			name:      "zero fee rate",
			outputSum: 5_000,
			feeRate:   0,
			want: []wire.OutPoint{
				pool[3].OutPoint, pool[2].OutPoint,
			},
			wantFee: 0,
		},
		{
			name:      "script hash coin is never spent",
			outputSum: 80_000,
			feeRate:   1000,
			wantErr: &InsufficientFundsError{
				Sending: 80_000,
				Fee:     txrules.EstimateFee(4, 2, 1000),
			},
		},
	}

	for i, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			selected, fee, err := selectByAge(
				pool, test.outputSum, 1, test.feeRate,
			)
			if test.wantErr != nil {
				var fundsErr *InsufficientFundsError
				require.ErrorAs(t, err, &fundsErr, "test %d", i)
				require.Equal(t, test.wantErr, fundsErr)
				return
			}

			require.NoError(t, err, "test %d", i)
			require.Equal(t, test.want, outPoints(selected))
			require.Equal(t, test.wantFee, fee)
		})
	}
}

// TestPruneRedundant checks that pruning keeps the shortest prefix of the
// largest coins reaching the target.
func TestPruneRedundant(t *testing.T) {
	t.Parallel()

	key := newTestKey(t, 1)
	funding := []Coin{
		key.coin(0, 1, 1),
		key.coin(1, 1, 5),
		key.coin(2, 1, 3),
		key.coin(3, 1, 7),
	}

	tests := []struct {
		target btcutil.Amount
		want   []btcutil.Amount
	}{
		0: {target: 0, want: []btcutil.Amount{7}},
		1: {target: 7, want: []btcutil.Amount{7}},
		2: {target: 8, want: []btcutil.Amount{7, 5}},
		3: {target: 13, want: []btcutil.Amount{7, 5, 3}},
		4: {target: 16, want: []btcutil.Amount{7, 5, 3, 1}},
	}

	rnd := rand.New(rand.NewSource(1))
	for i, test := range tests {
		kept := pruneRedundant(funding, test.target, rnd)

		amounts := make([]btcutil.Amount, len(kept))
		for j := range kept {
			amounts[j] = kept[j].Amount
		}
		require.ElementsMatch(t, test.want, amounts, "test %d", i)
		require.GreaterOrEqual(t, sumCoins(kept), test.target)
	}

	// The caller's funding keeps its order.
	require.Equal(t, btcutil.Amount(1), funding[0].Amount)
	require.Equal(t, btcutil.Amount(7), funding[3].Amount)
}

// TestSelectCoins checks that coins gathered by age are pruned to the
// largest ones and the fee is recomputed for them.
func TestSelectCoins(t *testing.T) {
	t.Parallel()

	key := newTestKey(t, 1)
	pool := []Coin{
		key.coin(0, 1, 2_000),
		key.coin(1, 2, 3_000),
		key.coin(2, 3, 20_000),
		key.coin(3, 4, 50_000),
	}

	funding, fee, err := selectCoins(
		pool, 10_000, 1, 1000, rand.New(rand.NewSource(1)),
	)
	require.NoError(t, err)
	require.Equal(t, outPoints(pool[2:3]), outPoints(funding))
	require.Equal(t, txrules.EstimateFee(1, 2, 1000), fee)
}

// TestSelectCoinsPrefersConfirmed checks that unconfirmed coins are only
// spent after all confirmed ones.
func TestSelectCoinsPrefersConfirmed(t *testing.T) {
	t.Parallel()

	key := newTestKey(t, 1)
	pool := []Coin{
		key.coin(0, UnconfirmedHeight, 100_000),
		key.coin(1, 50, 100_000),
	}

	funding, _, err := selectCoins(
		pool, 50_000, 1, 1000, rand.New(rand.NewSource(1)),
	)
	require.NoError(t, err)
	require.Equal(t, outPoints(pool[1:]), outPoints(funding))
}

// TestMaxSpendableAmount checks the largest amount a pool can send.
func TestMaxSpendableAmount(t *testing.T) {
	t.Parallel()

	key := newTestKey(t, 1)

	tests := []struct {
		name    string
		pool    []Coin
		feeRate btcutil.Amount
		want    btcutil.Amount
	}{
		{
			name:    "single coin",
			pool:    []Coin{key.coin(0, 1, 500_000)},
			feeRate: 1000,
			want:    499_000,
		},
		{
			name: "two coins",
			pool: []Coin{
				key.coin(0, 1, 300_000),
				key.coin(1, 2, 300_000),
			},
			feeRate: 1000,
			want:    599_000,
		},
		{
			name:    "zero fee rate",
			pool:    []Coin{key.coin(0, 1, 500_000)},
			feeRate: 0,
			want:    500_000,
		},
		{
			name:    "dust after fee",
			pool:    []Coin{key.coin(0, 1, 6_000)},
			feeRate: 1000,
			want:    0,
		},
		{
			name:    "script hash coins only",
			pool:    []Coin{scriptHashCoin(t, 0, 1, 500_000)},
			feeRate: 1000,
			want:    0,
		},
		{
			name:    "empty pool",
			feeRate: 1000,
			want:    0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := maxSpendableAmount(
				test.pool, test.feeRate,
				txrules.DefaultMinOutputValue,
			)
			require.Equal(t, test.want, got)
		})
	}
}
