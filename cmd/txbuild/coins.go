// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bitlib/txbuild/wallet/txauthor"
	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// readCoinFile reads a coin pool stored as the result of a listunspent call.
func readCoinFile(path string, tipHeight int32) ([]txauthor.Coin, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readCoins(f, tipHeight)
}

// readCoins decodes a listunspent result and converts every spendable output
// to a coin.
func readCoins(r io.Reader, tipHeight int32) ([]txauthor.Coin, error) {
	var unspent []btcjson.ListUnspentResult
	if err := json.NewDecoder(r).Decode(&unspent); err != nil {
		return nil, errContext(err, "invalid listunspent result")
	}

	coins := make([]txauthor.Coin, 0, len(unspent))
	for i := range unspent {
		output := &unspent[i]
		if !output.Spendable {
			log.Debugf("Skipping unspendable output %s:%d",
				output.TxID, output.Vout)
			continue
		}

		coin, err := makeCoin(output, tipHeight)
		if err != nil {
			return nil, fmt.Errorf("invalid data in listunspent "+
				"result: %v", err)
		}
		coins = append(coins, coin)
	}

	log.Infof("Read %d %s", len(coins), pickNoun(len(coins), "coin", "coins"))

	return coins, nil
}

// makeCoin converts a single listunspent result.  Confirmed coins are placed
// at the height they were mined at relative to tipHeight.
func makeCoin(output *btcjson.ListUnspentResult,
	tipHeight int32) (txauthor.Coin, error) {

	outPoint, err := parseOutPoint(output)
	if err != nil {
		return txauthor.Coin{}, err
	}

	amount, err := btcutil.NewAmount(output.Amount)
	if err != nil {
		return txauthor.Coin{}, fmt.Errorf("invalid amount `%v`",
			output.Amount)
	}
	if !saneOutputValue(amount) {
		return txauthor.Coin{}, fmt.Errorf("impossible output amount "+
			"`%v`", amount)
	}

	pkScript, err := hex.DecodeString(output.ScriptPubKey)
	if err != nil {
		return txauthor.Coin{}, fmt.Errorf("invalid script: %v", err)
	}

	height := txauthor.UnconfirmedHeight
	if output.Confirmations > 0 {
		height = tipHeight - int32(output.Confirmations) + 1
	}

	return txauthor.Coin{
		OutPoint: outPoint,
		Height:   height,
		Amount:   amount,
		PkScript: pkScript,
	}, nil
}

func saneOutputValue(amount btcutil.Amount) bool {
	return amount >= 0 && amount <= btcutil.MaxSatoshi
}

func parseOutPoint(input *btcjson.ListUnspentResult) (wire.OutPoint, error) {
	txHash, err := chainhash.NewHashFromStr(input.TxID)
	if err != nil {
		return wire.OutPoint{}, err
	}
	return wire.OutPoint{Hash: *txHash, Index: input.Vout}, nil
}
