// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/bitlib/txbuild/netparams"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/davecgh/go-spew/spew"
)

// SigningRequest is the hash one funding input must be signed over together
// with the public key controlling that input.
type SigningRequest struct {
	PubKey *btcutil.AddressPubKey
	Hash   chainhash.Hash
}

// UnsignedTx is a funded transaction waiting for signatures.  It is never
// modified after creation and every accessor returns a copy.
type UnsignedTx struct {
	outputs     []*wire.TxOut
	funding     []Coin
	requests    []SigningRequest
	params      *netparams.Params
	changeIndex int
	lockTime    uint32
}

// PubKeyRing finds the public key controlling a single key address.
type PubKeyRing interface {
	FindPubKey(addr btcutil.Address) (*btcutil.AddressPubKey, error)
}

// newUnsignedTx assembles the transaction spending funding to outputs and
// derives one signing request per funding coin, in funding order.  funding is
// copied, so later changes to the caller's coins are not seen.
func newUnsignedTx(outputs []*wire.TxOut, funding []Coin, changeIndex int,
	lockTime uint32, keyRing PubKeyRing,
	params *netparams.Params) (*UnsignedTx, error) {

	funding = copyCoins(funding)
	tx := buildTx(outputs, funding, lockTime)

	requests := make([]SigningRequest, len(funding))
	for i := range funding {
		coin := &funding[i]

		addr, err := fundingAddress(coin, params.Params)
		if err != nil {
			return nil, err
		}

		pubKey, err := findPubKey(keyRing, addr)
		if err != nil {
			return nil, err
		}

		hash, err := signatureHash(tx, i, coin.PkScript)
		if err != nil {
			return nil, err
		}

		requests[i] = SigningRequest{PubKey: pubKey, Hash: hash}
	}

	unsigned := &UnsignedTx{
		outputs:     outputs,
		funding:     funding,
		requests:    requests,
		params:      params,
		changeIndex: changeIndex,
		lockTime:    lockTime,
	}

	log.Tracef("Unsigned transaction %v", newLogClosure(func() string {
		return spew.Sdump(tx)
	}))

	return unsigned, nil
}

// findPubKey looks up the key of addr and makes sure it really hashes to addr.
func findPubKey(keyRing PubKeyRing, addr btcutil.Address) (
	*btcutil.AddressPubKey, error) {

	pubKey, err := keyRing.FindPubKey(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %v", ErrPubKeyNotFound, addr, err)
	}
	if pubKey == nil {
		return nil, fmt.Errorf("%w: %v", ErrPubKeyNotFound, addr)
	}
	pkHash := pubKey.AddressPubKeyHash().ScriptAddress()
	if !bytes.Equal(pkHash, addr.ScriptAddress()) {
		return nil, fmt.Errorf("%w: %v does not match key %x",
			ErrPubKeyNotFound, addr, pubKey.ScriptAddress())
	}

	return pubKey, nil
}

// buildTx returns a version 1 transaction with one empty input per funding
// coin and the given outputs.  Inputs are final unless lockTime is set.
func buildTx(outputs []*wire.TxOut, funding []Coin,
	lockTime uint32) *wire.MsgTx {

	sequence := uint32(wire.MaxTxInSequenceNum)
	if lockTime != 0 {
		sequence = wire.MaxTxInSequenceNum - 1
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.LockTime = lockTime
	for i := range funding {
		outPoint := funding[i].OutPoint
		txIn := wire.NewTxIn(&outPoint, nil, nil)
		txIn.Sequence = sequence
		tx.AddTxIn(txIn)
	}
	for _, out := range outputs {
		tx.AddTxOut(out)
	}
	return tx
}

// signatureHash returns the legacy SIGHASH_ALL hash input idx of tx commits
// to.  The input's script is replaced by pkScript while serializing and
// cleared again afterwards.
func signatureHash(tx *wire.MsgTx, idx int,
	pkScript []byte) (chainhash.Hash, error) {

	txIn := tx.TxIn[idx]
	txIn.SignatureScript = append([]byte(nil), pkScript...)
	defer func() {
		txIn.SignatureScript = nil
	}()

	var buf bytes.Buffer
	buf.Grow(tx.SerializeSizeStripped() + 4)
	if err := tx.SerializeNoWitness(&buf); err != nil {
		return chainhash.Hash{}, err
	}

	var hashType [4]byte
	binary.LittleEndian.PutUint32(hashType[:], uint32(txscript.SigHashAll))
	buf.Write(hashType[:])

	return chainhash.DoubleHashH(buf.Bytes()), nil
}

// Outputs returns the outputs of the transaction, change included.
func (u *UnsignedTx) Outputs() []*wire.TxOut {
	return copyOutputs(u.outputs)
}

// Funding returns the coins spent by the transaction in input order.
func (u *UnsignedTx) Funding() []Coin {
	return copyCoins(u.funding)
}

// SigningRequests returns one request per funding coin in input order.
func (u *UnsignedTx) SigningRequests() []SigningRequest {
	requests := make([]SigningRequest, len(u.requests))
	copy(requests, u.requests)
	return requests
}

// Params returns the network the transaction was built for.
func (u *UnsignedTx) Params() *netparams.Params {
	return u.params
}

// ChangeIndex returns the index of the change output, or -1 if the
// transaction has none.
func (u *UnsignedTx) ChangeIndex() int {
	return u.changeIndex
}

// LockTime returns the lock time of the transaction.
func (u *UnsignedTx) LockTime() uint32 {
	return u.lockTime
}

// Fee returns the amount paid to miners.
func (u *UnsignedTx) Fee() btcutil.Amount {
	return sumCoins(u.funding) - SumOutputValues(u.outputs)
}

// Tx returns the transaction with empty signature scripts.
func (u *UnsignedTx) Tx() *wire.MsgTx {
	return buildTx(u.Outputs(), u.funding, u.lockTime)
}

// Packet returns the transaction as an unsigned PSBT.
func (u *UnsignedTx) Packet() (*psbt.Packet, error) {
	packet, err := psbt.NewFromUnsignedTx(u.Tx())
	if err != nil {
		return nil, err
	}
	for i := range packet.Inputs {
		packet.Inputs[i].SighashType = txscript.SigHashAll
	}
	return packet, nil
}

// String returns a table of the funding next to the outputs, headed by the
// fee.
func (u *UnsignedTx) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Fee: %v\n", u.Fee())

	rows := max(len(u.funding), len(u.outputs))
	for i := 0; i < rows; i++ {
		var inAddr, inValue, outAddr, outValue, arrow string
		if i < len(u.funding) {
			inAddr = scriptAddress(u.funding[i].PkScript, u.params.Params)
			inValue = fmt.Sprintf("(%v)", u.funding[i].Amount)
		}
		if i < len(u.outputs) {
			outAddr = scriptAddress(u.outputs[i].PkScript, u.params.Params)
			outValue = fmt.Sprintf("(%v)",
				btcutil.Amount(u.outputs[i].Value))
		}
		arrow = "  "
		if inAddr != "" && outAddr != "" {
			arrow = "->"
		}
		fmt.Fprintf(&sb, "%36s %13s %s %36s %13s\n", inAddr, inValue,
			arrow, outAddr, outValue)
	}

	return sb.String()
}

// scriptAddress returns the encoded address pkScript pays to, or "Unknown".
func scriptAddress(pkScript []byte, params *chaincfg.Params) string {
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, params)
	if err != nil || len(addrs) != 1 {
		return "Unknown"
	}
	return addrs[0].EncodeAddress()
}
