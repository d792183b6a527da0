// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"io"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/mock"
)

// mockPubKeyRing is a mock implementation of the PubKeyRing interface.
type mockPubKeyRing struct {
	mock.Mock
}

// A compile-time assertion to ensure that mockPubKeyRing implements the
// PubKeyRing interface.
var _ PubKeyRing = (*mockPubKeyRing)(nil)

// FindPubKey implements the PubKeyRing interface.
func (m *mockPubKeyRing) FindPubKey(
	addr btcutil.Address) (*btcutil.AddressPubKey, error) {

	args := m.Called(addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*btcutil.AddressPubKey), args.Error(1)
}

// mockPrivKeyRing is a mock implementation of the PrivKeyRing interface.
type mockPrivKeyRing struct {
	mock.Mock
}

// A compile-time assertion to ensure that mockPrivKeyRing implements the
// PrivKeyRing interface.
var _ PrivKeyRing = (*mockPrivKeyRing)(nil)

// FindSigner implements the PrivKeyRing interface.
func (m *mockPrivKeyRing) FindSigner(
	pubKey *btcutil.AddressPubKey) (Signer, error) {

	args := m.Called(pubKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(Signer), args.Error(1)
}

// mockSigner is a mock implementation of the Signer interface.
type mockSigner struct {
	mock.Mock
}

// A compile-time assertion to ensure that mockSigner implements the Signer
// interface.
var _ Signer = (*mockSigner)(nil)

// SignHash implements the Signer interface.
func (m *mockSigner) SignHash(hash *chainhash.Hash,
	rand io.Reader) ([]byte, error) {

	args := m.Called(hash, rand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}
