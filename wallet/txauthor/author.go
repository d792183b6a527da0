// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txauthor builds standard pay-to-pubkey-hash transactions from a pool
// of spendable coins.
//
// A Builder collects the outputs to pay, selects the funding coins, estimates
// the fee and adds change.  The result is an UnsignedTx holding one signing
// request per input.  Signatures produced for those requests are attached by
// FinalizeTransaction.
package txauthor

import (
	"errors"

	"github.com/bitlib/txbuild/netparams"
	"github.com/bitlib/txbuild/wallet/txrules"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// Builder accumulates the outputs of a transaction and funds them.  A Builder
// is not safe for concurrent use.
type Builder struct {
	params   *netparams.Params
	outputs  []*wire.TxOut
	rand     Rand
	lockTime uint32
}

// Option configures a Builder.
type Option func(*Builder)

// WithRand sets the source of randomness used for shuffling the funding and
// placing the change output.
func WithRand(r Rand) Option {
	return func(b *Builder) {
		b.rand = r
	}
}

// WithLockTime sets the lock time of the transactions built.  A non-zero
// lock time also marks every input non-final so the lock time is enforced.
// The default is zero.
func WithLockTime(lockTime uint32) Option {
	return func(b *Builder) {
		b.lockTime = lockTime
	}
}

// NewBuilder returns a Builder for the given network without any outputs.
func NewBuilder(params *netparams.Params, opts ...Option) *Builder {
	b := &Builder{
		params: params,
		rand:   cprng,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// payToAddrScript returns the output script paying to addr.  Public key
// addresses are paid through their hash.
func payToAddrScript(addr btcutil.Address,
	params *chaincfg.Params) ([]byte, error) {

	switch a := addr.(type) {
	case *btcutil.AddressPubKeyHash, *btcutil.AddressScriptHash:
	case *btcutil.AddressPubKey:
		addr = a.AddressPubKeyHash()
	default:
		return nil, ErrUnsupportedAddress
	}

	if !addr.IsForNet(params) {
		return nil, ErrWrongNetwork
	}

	return txscript.PayToAddrScript(addr)
}

// AddOutput adds an output paying amount to addr.  An amount below the
// network's minimum output value is rejected with an OutputTooSmallError.
func (b *Builder) AddOutput(addr btcutil.Address, amount btcutil.Amount) error {
	pkScript, err := payToAddrScript(addr, b.params.Params)
	if err != nil {
		return err
	}

	out := wire.NewTxOut(int64(amount), pkScript)
	err = txrules.CheckOutput(out, b.params.MinOutputValue)
	switch {
	case errors.Is(err, txrules.ErrOutputIsDust):
		return &OutputTooSmallError{
			Value:   amount,
			Minimum: b.params.MinOutputValue,
		}
	case err != nil:
		return err
	}

	b.outputs = append(b.outputs, out)
	return nil
}

// AddNullData adds a zero value output carrying payload.
func (b *Builder) AddNullData(payload []byte) error {
	pkScript, err := txscript.NullDataScript(payload)
	if err != nil {
		return err
	}

	b.outputs = append(b.outputs, wire.NewTxOut(0, pkScript))
	return nil
}

// Outputs returns the outputs added so far.
func (b *Builder) Outputs() []*wire.TxOut {
	return copyOutputs(b.outputs)
}

// MaxSpendableAmount returns the largest amount a single output could send
// when funded from coins at the given fee rate.
func (b *Builder) MaxSpendableAmount(coins []Coin,
	feeRatePerKb btcutil.Amount) btcutil.Amount {

	return maxSpendableAmount(coins, feeRatePerKb, b.params.MinOutputValue)
}

// CreateUnsignedTransaction funds the builder's outputs from coins.
//
// Confirmed coins are preferred over unconfirmed ones and older over newer.
// Of the coins needed that way, the fewest large coins still paying for the
// outputs and the fee are kept.  Change is sent to changeAddr, or to the
// address contributing most to the funding when changeAddr is empty, unless
// it would be below the network's minimum output value.  In that case it is
// left to the miner.
//
// Without any outputs added the coins needed for the fee are consolidated
// into the change output.  ErrNoOutputs is returned if that change would be
// below the minimum output value.
//
// An InsufficientFundsError is returned when coins can not pay for the
// outputs plus the fee.  keyRing must know the key of every single key coin
// offered.
func (b *Builder) CreateUnsignedTransaction(coins []Coin,
	changeAddr fn.Option[btcutil.Address], keyRing PubKeyRing,
	feeRatePerKb btcutil.Amount) (*UnsignedTx, error) {

	if feeRatePerKb < 0 {
		return nil, ErrNegativeFeeRate
	}

	outputSum := SumOutputValues(b.outputs)
	funding, fee, err := selectCoins(
		coins, outputSum, len(b.outputs), feeRatePerKb, b.rand,
	)
	if err != nil {
		return nil, err
	}
	if len(funding) == 0 {
		return nil, ErrEmptyFunding
	}

	outputs := copyOutputs(b.outputs)
	changeIndex := -1

	change := sumCoins(funding) - (fee + outputSum)
	if change > 0 && !txrules.IsDustAmount(change, b.params.MinOutputValue) {
		addr, err := changeAddress(changeAddr, funding, b.params.Params)
		if err != nil {
			return nil, err
		}
		pkScript, err := payToAddrScript(addr, b.params.Params)
		if err != nil {
			return nil, err
		}

		changeIndex = b.rand.Intn(len(outputs) + 1)
		outputs = insertOutput(
			outputs, wire.NewTxOut(int64(change), pkScript),
			changeIndex,
		)
	} else if change > 0 {
		log.Debugf("Adding change %v below %v to the fee", change,
			b.params.MinOutputValue)
	}
	if len(outputs) == 0 {
		return nil, ErrNoOutputs
	}

	return newUnsignedTx(
		outputs, funding, changeIndex, b.lockTime, keyRing, b.params,
	)
}

// CreateReplacementTransaction spends exactly the funding of prior again.
// The builder's outputs are paid together with an output of the value of all
// outputs of prior, placed first and sent to changeAddr or the address
// contributing most to the funding.  The builder's lock time applies.  The
// fee of prior is kept as long as the builder's outputs leave room for it.  Otherwise an InsufficientFundsError
// is returned.
func (b *Builder) CreateReplacementTransaction(prior *UnsignedTx,
	changeAddr fn.Option[btcutil.Address],
	keyRing PubKeyRing) (*UnsignedTx, error) {

	funding := prior.Funding()
	if len(funding) == 0 {
		return nil, ErrEmptyFunding
	}

	toSend := SumOutputValues(prior.outputs)
	if txrules.IsDustAmount(toSend, b.params.MinOutputValue) {
		return nil, &OutputTooSmallError{
			Value:   toSend,
			Minimum: b.params.MinOutputValue,
		}
	}

	addr, err := changeAddress(changeAddr, funding, b.params.Params)
	if err != nil {
		return nil, err
	}
	pkScript, err := payToAddrScript(addr, b.params.Params)
	if err != nil {
		return nil, err
	}

	outputs := insertOutput(
		copyOutputs(b.outputs), wire.NewTxOut(int64(toSend), pkScript),
		0,
	)

	found := sumCoins(funding)
	if sending := SumOutputValues(outputs); sending > found {
		return nil, &InsufficientFundsError{
			Sending: sending,
			Fee:     found - toSend,
		}
	}

	return newUnsignedTx(outputs, funding, 0, b.lockTime, keyRing, b.params)
}
