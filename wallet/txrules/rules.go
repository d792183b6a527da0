// Copyright (c) 2016 The btcsuite developers
// Copyright (c) 2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txrules

import (
	"errors"

	"github.com/bitlib/txbuild/wallet/txsizes"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// DefaultFeePerKb is the default fee rate paid per started kilobyte.
const DefaultFeePerKb btcutil.Amount = 1e4

// DefaultMinOutputValue is the smallest output value accepted by the default
// relay policy.
const DefaultMinOutputValue btcutil.Amount = 5460

// IsDustAmount determines whether an output value is below the minimum output
// value accepted by the network.
func IsDustAmount(amount btcutil.Amount, minOutputValue btcutil.Amount) bool {
	return amount < minOutputValue
}

// IsDustOutput determines whether a transaction output is considered dust.
// Transactions with dust outputs are not standard and are rejected by mempools
// with default policies.
func IsDustOutput(output *wire.TxOut, minOutputValue btcutil.Amount) bool {
	// Unspendable outputs which solely carry data are not checked for dust.
	if txscript.GetScriptClass(output.PkScript) == txscript.NullDataTy {
		return false
	}

	// All other unspendable outputs are considered dust.
	if txscript.IsUnspendable(output.PkScript) {
		return true
	}

	return IsDustAmount(btcutil.Amount(output.Value), minOutputValue)
}

// Transaction rule violations
var (
	ErrAmountNegative   = errors.New("transaction output amount is negative")
	ErrAmountExceedsMax = errors.New("transaction output amount exceeds maximum value")
	ErrOutputIsDust     = errors.New("transaction output is dust")
)

// CheckOutput performs simple consensus and policy tests on a transaction
// output.
func CheckOutput(output *wire.TxOut, minOutputValue btcutil.Amount) error {
	if output.Value < 0 {
		return ErrAmountNegative
	}
	if output.Value > btcutil.MaxSatoshi {
		return ErrAmountExceedsMax
	}
	if IsDustOutput(output, minOutputValue) {
		return ErrOutputIsDust
	}
	return nil
}

// FeeForSerializeSize calculates the fee for a transaction of some arbitrary
// size.  The size is rounded down to whole kilobytes and one kilobyte is
// added, so even an empty transaction pays feeRatePerKb.
func FeeForSerializeSize(feeRatePerKb btcutil.Amount, txSerializeSize int) btcutil.Amount {
	return (1 + btcutil.Amount(txSerializeSize/1000)) * feeRatePerKb
}

// EstimateFee returns the fee required for a transaction with inputCount
// standard inputs and outputCount outputs at the given fee rate.
func EstimateFee(inputCount, outputCount int, feeRatePerKb btcutil.Amount) btcutil.Amount {
	size := txsizes.EstimateSerializeSize(inputCount, outputCount)
	return FeeForSerializeSize(feeRatePerKb, size)
}
