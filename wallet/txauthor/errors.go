// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"errors"
	"fmt"

	"github.com/bitlib/txbuild/wallet/txrules"
	"github.com/btcsuite/btcd/btcutil"
)

var (
	// ErrUnsupportedScript is returned when a coin selected for funding
	// does not pay to a single public key hash.  Callers must only offer
	// such coins for signing.
	ErrUnsupportedScript = errors.New("unsupported funding script")

	// ErrUnsupportedAddress is returned when an output is requested to an
	// address that is neither a pubkey hash nor a script hash address.
	ErrUnsupportedAddress = errors.New("unsupported destination address")

	// ErrWrongNetwork is returned when an output address belongs to a
	// different network than the builder.
	ErrWrongNetwork = errors.New("address is for a different network")

	// ErrPubKeyNotFound is returned when the public key ring does not
	// control the key for a funding coin.
	ErrPubKeyNotFound = errors.New("public key not found")

	// ErrSignerNotFound is returned when the private key ring does not
	// control the key of a signing request.
	ErrSignerNotFound = errors.New("private key not found")

	// ErrNoOutputs is returned when a transaction would be built without
	// any output, which happens when nothing was added and the change is
	// too small to keep.
	ErrNoOutputs = errors.New("transaction has no outputs")

	// ErrNegativeFeeRate is returned for a fee rate below zero.
	ErrNegativeFeeRate = errors.New("negative fee rate")

	// ErrEmptyFunding is returned when a transaction would be built
	// without any funding coin.
	ErrEmptyFunding = errors.New("no funding coins selected")

	// ErrSignatureCount is returned when the number of signatures does
	// not match the number of funding coins.
	ErrSignatureCount = errors.New("signature count does not match " +
		"funding count")
)

// InputSourceError describes the failure to provide enough input value from
// unspent transaction outputs to meet a target amount.
type InputSourceError interface {
	error
	InputSourceError()
}

// InsufficientFundsError is returned when the offered coins can not pay for
// the requested outputs plus the miner fee.  Sending is the sum of the
// requested outputs and Fee the last fee computed during selection.
type InsufficientFundsError struct {
	Sending btcutil.Amount
	Fee     btcutil.Amount
}

// InputSourceError implements the InputSourceError interface.
func (*InsufficientFundsError) InputSourceError() {}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds to send %v with fee %v",
		e.Sending, e.Fee)
}

// OutputTooSmallError is returned when an output is requested with a value
// below the network's minimum output value.
type OutputTooSmallError struct {
	Value   btcutil.Amount
	Minimum btcutil.Amount
}

func (e *OutputTooSmallError) Error() string {
	return fmt.Sprintf("output value %v is smaller than the minimum %v "+
		"accepted by the network", e.Value, e.Minimum)
}

// Unwrap allows errors.Is to match txrules.ErrOutputIsDust.
func (e *OutputTooSmallError) Unwrap() error {
	return txrules.ErrOutputIsDust
}

// IsRecoverable reports whether err is one the caller is expected to handle,
// e.g. by asking for a lower amount.  Every other error returned by this
// package is a broken contract between the builder and its collaborators.
func IsRecoverable(err error) bool {
	var (
		fundsErr  *InsufficientFundsError
		outputErr *OutputTooSmallError
	)
	return errors.As(err, &fundsErr) || errors.As(err, &outputErr)
}
