// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// fundingAddress returns the address a single key coin pays to.
func fundingAddress(coin *Coin, params *chaincfg.Params) (btcutil.Address,
	error) {

	if !isSingleKey(coin.PkScript) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedScript,
			coin.OutPoint)
	}

	_, addrs, _, err := txscript.ExtractPkScriptAddrs(coin.PkScript, params)
	if err != nil {
		return nil, err
	}
	if len(addrs) != 1 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedScript,
			coin.OutPoint)
	}

	return addrs[0], nil
}

// richestAddress groups funding by the address each coin pays to and returns
// the address holding the greatest value.  On equal values the address seen
// first wins.  Sending change there means the change is always smaller than
// that address' own contribution.
func richestAddress(funding []Coin, params *chaincfg.Params) (btcutil.Address,
	error) {

	if len(funding) == 0 {
		return nil, ErrEmptyFunding
	}

	type group struct {
		addr  btcutil.Address
		total btcutil.Amount
	}

	var (
		groups []*group
		index  = make(map[string]*group)
	)
	for i := range funding {
		addr, err := fundingAddress(&funding[i], params)
		if err != nil {
			return nil, err
		}

		key := addr.EncodeAddress()
		g, ok := index[key]
		if !ok {
			g = &group{addr: addr}
			index[key] = g
			groups = append(groups, g)
		}
		g.total += funding[i].Amount
	}

	richest := groups[0]
	for _, g := range groups[1:] {
		if g.total > richest.total {
			richest = g
		}
	}

	return richest.addr, nil
}

// changeAddress returns the explicit change address if one is set and the
// richest funding address otherwise.
func changeAddress(explicit fn.Option[btcutil.Address], funding []Coin,
	params *chaincfg.Params) (btcutil.Address, error) {

	if explicit.IsSome() {
		return explicit.UnwrapOr(nil), nil
	}

	return richestAddress(funding, params)
}

// insertOutput returns a new slice with out placed at index pos of outputs.
func insertOutput(outputs []*wire.TxOut, out *wire.TxOut,
	pos int) []*wire.TxOut {

	l := len(outputs)
	result := make([]*wire.TxOut, 0, l+1)
	result = append(result, outputs[:pos]...)
	result = append(result, out)
	return append(result, outputs[pos:]...)
}

// copyOutputs deep copies outputs so later changes to either slice do not
// leak into the other.
func copyOutputs(outputs []*wire.TxOut) []*wire.TxOut {
	cpy := make([]*wire.TxOut, len(outputs))
	for i, out := range outputs {
		cpy[i] = wire.NewTxOut(out.Value, append([]byte(nil),
			out.PkScript...))
	}
	return cpy
}
