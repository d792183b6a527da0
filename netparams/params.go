// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netparams

import (
	"github.com/bitlib/txbuild/wallet/txrules"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// Params is used to group parameters for various networks such as the main
// network and test networks.
type Params struct {
	*chaincfg.Params

	// MinOutputValue is the smallest output value the network relays.
	// Requested outputs below it are rejected and change below it is left
	// to the miner.
	MinOutputValue btcutil.Amount
}

// MainNetParams contains parameters specific to building transactions for
// the main network (wire.MainNet).
var MainNetParams = Params{
	Params:         &chaincfg.MainNetParams,
	MinOutputValue: txrules.DefaultMinOutputValue,
}

// TestNet3Params contains parameters specific to building transactions for
// the test network (version 3) (wire.TestNet3).
var TestNet3Params = Params{
	Params:         &chaincfg.TestNet3Params,
	MinOutputValue: txrules.DefaultMinOutputValue,
}

// SimNetParams contains parameters specific to the simulation test network
// (wire.SimNet).
var SimNetParams = Params{
	Params:         &chaincfg.SimNetParams,
	MinOutputValue: txrules.DefaultMinOutputValue,
}

// RegressionNetParams contains parameters specific to the regression test
// network (wire.TestNet).
var RegressionNetParams = Params{
	Params:         &chaincfg.RegressionNetParams,
	MinOutputValue: txrules.DefaultMinOutputValue,
}
