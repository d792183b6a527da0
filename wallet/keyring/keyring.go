// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keyring keeps private keys in memory and serves them to the
// transaction builder as a public and a private key ring.
package keyring

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bitlib/txbuild/wallet/txauthor"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

var (
	// ErrUnknownAddress is returned when no key of the ring hashes to the
	// requested address.
	ErrUnknownAddress = errors.New("address not controlled by key ring")

	// ErrUnsupportedAddress is returned for addresses that are not paid
	// to a single public key.
	ErrUnsupportedAddress = errors.New("address is not a single key " +
		"address")

	// ErrWrongNetwork is returned when a key is imported for a different
	// network than the ring.
	ErrWrongNetwork = errors.New("key is for a different network")
)

// keyHash identifies a key by the hash160 of its serialized public key.
type keyHash [20]byte

// entry is a private key with the public key address derived from it.  The
// address keeps the serialization the key is paid to with.
type entry struct {
	priv   *btcec.PrivateKey
	pubKey *btcutil.AddressPubKey
}

// Ring is an in-memory key ring.  It is safe for concurrent use.
type Ring struct {
	params *chaincfg.Params

	mu    sync.RWMutex
	keys  map[keyHash]*entry
	order []keyHash
}

// A compile-time assertion to ensure that Ring serves both key rings.
var (
	_ txauthor.PubKeyRing  = (*Ring)(nil)
	_ txauthor.PrivKeyRing = (*Ring)(nil)
)

// New returns an empty key ring for the given network.
func New(params *chaincfg.Params) *Ring {
	return &Ring{
		params: params,
		keys:   make(map[keyHash]*entry),
	}
}

// AddKey adds priv to the ring and returns the address it is paid to with.
// compressed selects the serialization of the public key.
func (r *Ring) AddKey(priv *btcec.PrivateKey,
	compressed bool) (*btcutil.AddressPubKeyHash, error) {

	serialized := priv.PubKey().SerializeUncompressed()
	if compressed {
		serialized = priv.PubKey().SerializeCompressed()
	}

	pubKey, err := btcutil.NewAddressPubKey(serialized, r.params)
	if err != nil {
		return nil, err
	}
	addr := pubKey.AddressPubKeyHash()

	var h keyHash
	copy(h[:], addr.ScriptAddress())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[h]; !ok {
		r.order = append(r.order, h)
	}
	r.keys[h] = &entry{priv: priv, pubKey: pubKey}

	log.Debugf("Added key for %v", addr)

	return addr, nil
}

// AddWIF adds the key encoded by wif.
func (r *Ring) AddWIF(wif *btcutil.WIF) (*btcutil.AddressPubKeyHash, error) {
	if !wif.IsForNet(r.params) {
		return nil, ErrWrongNetwork
	}
	return r.AddKey(wif.PrivKey, wif.CompressPubKey)
}

// NewKey generates a compressed key from rand and adds it to the ring.
func (r *Ring) NewKey(rand io.Reader) (*btcutil.AddressPubKeyHash, error) {
	priv, err := secp256k1.GeneratePrivateKeyFromRand(rand)
	if err != nil {
		return nil, fmt.Errorf("unable to generate key: %w", err)
	}
	return r.AddKey(priv, true)
}

// Addresses returns the addresses of all keys in the order they were added.
func (r *Ring) Addresses() []btcutil.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()

	addrs := make([]btcutil.Address, 0, len(r.order))
	for _, h := range r.order {
		addrs = append(addrs, r.keys[h].pubKey.AddressPubKeyHash())
	}
	return addrs
}

// lookup returns the entry of the key hashing to hash.
func (r *Ring) lookup(hash []byte) (*entry, bool) {
	var h keyHash
	if len(hash) != len(h) {
		return nil, false
	}
	copy(h[:], hash)

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.keys[h]
	return e, ok
}

// FindPubKey returns the public key paid to by addr.
func (r *Ring) FindPubKey(addr btcutil.Address) (*btcutil.AddressPubKey,
	error) {

	var hash []byte
	switch a := addr.(type) {
	case *btcutil.AddressPubKeyHash:
		hash = a.ScriptAddress()
	case *btcutil.AddressPubKey:
		hash = a.AddressPubKeyHash().ScriptAddress()
	default:
		return nil, ErrUnsupportedAddress
	}

	e, ok := r.lookup(hash)
	if !ok {
		return nil, ErrUnknownAddress
	}
	return e.pubKey, nil
}

// FindSigner returns the signer for the private key of pubKey.
func (r *Ring) FindSigner(pubKey *btcutil.AddressPubKey) (txauthor.Signer,
	error) {

	e, ok := r.lookup(pubKey.AddressPubKeyHash().ScriptAddress())
	if !ok {
		return nil, ErrUnknownAddress
	}
	return &signer{priv: e.priv}, nil
}

// signer signs with a single private key.
type signer struct {
	priv *btcec.PrivateKey
}

// SignHash returns a DER signature of hash followed by the SIGHASH_ALL type.
// Nonces are derived from the key and hash, so rand is not used.
func (s *signer) SignHash(hash *chainhash.Hash, _ io.Reader) ([]byte, error) {
	sig := ecdsa.Sign(s.priv, hash[:])
	return append(sig.Serialize(), byte(txscript.SigHashAll)), nil
}
