// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"errors"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
)

// ErrMalformedOutput is returned for an output flag that is not of the form
// address:amount.
var ErrMalformedOutput = errors.New("output must be given as address:amount")

// AmountFlag embeds a btcutil.Amount and implements the flags.Marshaler and
// Unmarshaler interfaces so it can be used as a config struct field.
type AmountFlag struct {
	btcutil.Amount
}

// NewAmountFlag creates an AmountFlag with a default btcutil.Amount.
func NewAmountFlag(defaultValue btcutil.Amount) *AmountFlag {
	return &AmountFlag{defaultValue}
}

// MarshalFlag satisfies the flags.Marshaler interface.
func (a *AmountFlag) MarshalFlag() (string, error) {
	return a.Amount.String(), nil
}

// UnmarshalFlag satisfies the flags.Unmarshaler interface.  Values are read
// as bitcoin unless they end in " sat" or "sat", in which case they are a
// whole number of satoshi.
func (a *AmountFlag) UnmarshalFlag(value string) error {
	amount, err := parseAmount(value)
	if err != nil {
		return err
	}
	a.Amount = amount
	return nil
}

// parseAmount parses a bitcoin or satoshi denominated amount.
func parseAmount(value string) (btcutil.Amount, error) {
	value = strings.TrimSpace(value)
	if sat, ok := strings.CutSuffix(value, "sat"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(sat), 10, 64)
		if err != nil {
			return 0, err
		}
		return btcutil.Amount(n), nil
	}

	value = strings.TrimSpace(strings.TrimSuffix(value, "BTC"))
	valueF64, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	return btcutil.NewAmount(valueF64)
}

// OutputFlag is a requested payment given as address:amount.  The address is
// kept encoded since decoding it needs the network, which may be selected by
// a later flag.
type OutputFlag struct {
	Address string
	Amount  btcutil.Amount
}

// MarshalFlag satisfies the flags.Marshaler interface.
func (o *OutputFlag) MarshalFlag() (string, error) {
	return o.Address + ":" + strconv.FormatFloat(o.Amount.ToBTC(), 'f', -1,
		64), nil
}

// UnmarshalFlag satisfies the flags.Unmarshaler interface.
func (o *OutputFlag) UnmarshalFlag(value string) error {
	addr, amount, ok := strings.Cut(value, ":")
	if !ok || addr == "" || amount == "" {
		return ErrMalformedOutput
	}

	a, err := parseAmount(amount)
	if err != nil {
		return err
	}

	o.Address = addr
	o.Amount = a
	return nil
}
