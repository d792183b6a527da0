// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txsizes provides the upper bound size estimates used when funding
// standard transactions.
package txsizes

import (
	"github.com/btcsuite/btcd/wire"
)

// Worst case script and input/output size estimates.
const (
	// MaxSigScriptSize is the upper limit assumed for the serialized
	// signature script of any funding input.  It is larger than the worst
	// case compressed or uncompressed P2PKH redeem script so that the
	// estimate never undershoots.
	MaxSigScriptSize = 140

	// P2PKHPkScriptSize is the size of a transaction output script that
	// pays to a compressed pubkey hash.  It is calculated as:
	//
	//   - OP_DUP
	//   - OP_HASH160
	//   - OP_DATA_20
	//   - 20 bytes pubkey hash
	//   - OP_EQUALVERIFY
	//   - OP_CHECKSIG
	P2PKHPkScriptSize = 1 + 1 + 20 + 1 + 1 + 1

	// InputSize is the size assumed for every funding input.  It is
	// calculated as:
	//
	//   - 32 bytes previous tx
	//   - 4 bytes output index
	//   - 140 bytes signature script (upper limit)
	//   - 1 byte compact int encoding the script length
	//   - 4 bytes sequence
	InputSize = 32 + 4 + MaxSigScriptSize + 1 + 4

	// OutputSize is the size assumed for every output.  It is
	// calculated as:
	//
	//   - 8 bytes output value
	//   - 25 bytes P2PKH output script
	//   - 1 byte compact int encoding value 25
	OutputSize = 8 + P2PKHPkScriptSize + 1

	// versionSize and lockTimeSize are the fixed header and trailer.
	versionSize  = 4
	lockTimeSize = 4
)

// EstimateSerializeSize returns an upper bound serialize size estimate for a
// signed transaction spending inputCount standard outputs and paying to
// outputCount outputs.  Every output is counted as a P2PKH output, whatever
// its actual script is.
func EstimateSerializeSize(inputCount, outputCount int) int {
	return versionSize +
		wire.VarIntSerializeSize(uint64(inputCount)) +
		inputCount*InputSize +
		wire.VarIntSerializeSize(uint64(outputCount)) +
		outputCount*OutputSize +
		lockTimeSize
}
