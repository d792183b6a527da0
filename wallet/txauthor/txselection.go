// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"math"
	"sort"

	"github.com/bitlib/txbuild/wallet/txrules"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// UnconfirmedHeight is the height recorded for coins that are not yet mined.
// It orders after every confirmed height, so confirmed coins are spent first.
const UnconfirmedHeight int32 = math.MaxInt32

// Coin is a previously created transaction output offered as funding.
type Coin struct {
	OutPoint wire.OutPoint
	Height   int32
	Amount   btcutil.Amount
	PkScript []byte
}

// isSingleKey reports whether pkScript pays to a single public key hash, the
// only kind of script this package selects and signs for.
func isSingleKey(pkScript []byte) bool {
	return txscript.GetScriptClass(pkScript) == txscript.PubKeyHashTy
}

// SumOutputValues sums up the list of TxOuts and returns an Amount.
func SumOutputValues(outputs []*wire.TxOut) (totalOutput btcutil.Amount) {
	for _, txOut := range outputs {
		totalOutput += btcutil.Amount(txOut.Value)
	}
	return totalOutput
}

// sumCoins sums up the value of coins.
func sumCoins(coins []Coin) (total btcutil.Amount) {
	for _, coin := range coins {
		total += coin.Amount
	}
	return total
}

// copyCoins returns a copy of coins that shares no script with it.
func copyCoins(coins []Coin) []Coin {
	cpy := make([]Coin, len(coins))
	for i, coin := range coins {
		coin.PkScript = append([]byte(nil), coin.PkScript...)
		cpy[i] = coin
	}
	return cpy
}

// byAge returns the indexes of the single key coins in pool ordered from the
// lowest height to the highest.  Coins at the same height keep their pool
// order.
func byAge(pool []Coin) []int {
	idxs := make([]int, 0, len(pool))
	for i := range pool {
		if isSingleKey(pool[i].PkScript) {
			idxs = append(idxs, i)
		}
	}
	sort.SliceStable(idxs, func(i, j int) bool {
		return pool[idxs[i]].Height < pool[idxs[j]].Height
	})
	return idxs
}

// selectByAge accumulates the oldest coins of pool until they pay for
// outputSum plus the fee of a transaction spending them.  The fee is
// recomputed after every added coin and always reserves room for a change
// output next to the outputCount requested outputs.
//
// The returned fee is the last one computed.  pool is not modified.
func selectByAge(pool []Coin, outputSum btcutil.Amount, outputCount int,
	feeRatePerKb btcutil.Amount) ([]Coin, btcutil.Amount, error) {

	var (
		selected []Coin
		found    btcutil.Amount
		fee      = feeRatePerKb
		oldest   = byAge(pool)
	)
	for found < fee+outputSum {
		if len(selected) == len(oldest) {
			return nil, fee, &InsufficientFundsError{
				Sending: outputSum,
				Fee:     fee,
			}
		}

		coin := pool[oldest[len(selected)]]
		selected = append(selected, coin)
		found += coin.Amount

		fee = txrules.EstimateFee(
			len(selected), outputCount+1, feeRatePerKb,
		)
	}

	return selected, fee, nil
}

// pruneRedundant keeps the largest coins of funding that together reach
// target and drops the rest.  The kept coins are returned in random order so
// the input order reveals nothing about how they were chosen.
func pruneRedundant(funding []Coin, target btcutil.Amount, rnd Rand) []Coin {
	largestToSmallest := make([]Coin, len(funding))
	copy(largestToSmallest, funding)
	sort.SliceStable(largestToSmallest, func(i, j int) bool {
		return largestToSmallest[i].Amount > largestToSmallest[j].Amount
	})

	var total btcutil.Amount
	for i := range largestToSmallest {
		total += largestToSmallest[i].Amount
		if total < target {
			continue
		}

		kept := largestToSmallest[:i+1:i+1]
		rnd.Shuffle(len(kept), func(a, b int) {
			kept[a], kept[b] = kept[b], kept[a]
		})
		return kept
	}

	return largestToSmallest
}

// selectCoins runs both selection stages over pool.  It returns the funding
// and the fee for a transaction spending it to outputCount outputs plus a
// change output.
func selectCoins(pool []Coin, outputSum btcutil.Amount, outputCount int,
	feeRatePerKb btcutil.Amount, rnd Rand) ([]Coin, btcutil.Amount, error) {

	allFunding, fee, err := selectByAge(
		pool, outputSum, outputCount, feeRatePerKb,
	)
	if err != nil {
		return nil, 0, err
	}

	funding := pruneRedundant(allFunding, fee+outputSum, rnd)
	fee = txrules.EstimateFee(len(funding), outputCount+1, feeRatePerKb)

	log.Debugf("Selected %d of %d aged %s, kept %d after pruning",
		len(allFunding), len(pool), pickNoun(len(pool), "coin", "coins"),
		len(funding))

	return funding, fee, nil
}

// maxSpendableAmount returns the largest amount a single output could send
// when funded from pool at the given fee rate.  Zero is returned when even
// the minimum output value can not be funded.
func maxSpendableAmount(pool []Coin, feeRatePerKb btcutil.Amount,
	minOutputValue btcutil.Amount) btcutil.Amount {

	var total btcutil.Amount
	for _, coin := range pool {
		if isSingleKey(coin.PkScript) {
			total += coin.Amount
		}
	}

	if feeRatePerKb <= 0 {
		if txrules.IsDustAmount(total, minOutputValue) {
			return 0
		}
		return total
	}

	// Every attempt lowers the amount by one fee rate until the pool can
	// pay for the output plus the fee of spending the coins it needs.
	for amount := total - feeRatePerKb; amount > 0; amount -= feeRatePerKb {
		if txrules.IsDustAmount(amount, minOutputValue) {
			return 0
		}
		_, _, err := selectByAge(pool, amount, 1, feeRatePerKb)
		if err == nil {
			return amount
		}
	}

	return 0
}
