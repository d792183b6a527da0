// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/bitlib/txbuild/netparams"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

// testParams is the network used by the tests of this package.
var testParams = &netparams.MainNetParams

// testKey bundles a private key with the addresses and script derived from
// it.
type testKey struct {
	priv     *btcec.PrivateKey
	pubKey   *btcutil.AddressPubKey
	addr     *btcutil.AddressPubKeyHash
	pkScript []byte
}

// newTestKey derives a key from a private key made of seed bytes.
func newTestKey(t *testing.T, seed byte) *testKey {
	t.Helper()

	priv, _ := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{seed}, 32))
	pubKey, err := btcutil.NewAddressPubKey(
		priv.PubKey().SerializeCompressed(), testParams.Params,
	)
	require.NoError(t, err)

	addr := pubKey.AddressPubKeyHash()
	pkScript, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)

	return &testKey{
		priv:     priv,
		pubKey:   pubKey,
		addr:     addr,
		pkScript: pkScript,
	}
}

// coin returns a coin of amount paying to k.  idx makes the outpoint unique.
func (k *testKey) coin(idx int, height int32, amount btcutil.Amount) Coin {
	return Coin{
		OutPoint: wire.OutPoint{
			Hash:  chainhash.Hash{byte(idx), byte(idx >> 8)},
			Index: uint32(idx),
		},
		Height:   height,
		Amount:   amount,
		PkScript: k.pkScript,
	}
}

// scriptHashCoin returns a coin paying to a script hash, which is never
// selected for funding.
func scriptHashCoin(t *testing.T, idx int, height int32,
	amount btcutil.Amount) Coin {

	t.Helper()

	addr, err := btcutil.NewAddressScriptHashFromHash(
		bytes.Repeat([]byte{0x11}, 20), testParams.Params,
	)
	require.NoError(t, err)

	pkScript, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)

	return Coin{
		OutPoint: wire.OutPoint{Hash: chainhash.Hash{0xff}, Index: uint32(idx)},
		Height:   height,
		Amount:   amount,
		PkScript: pkScript,
	}
}

// newKeyRing returns a public key ring knowing keys.
func newKeyRing(keys ...*testKey) *mockPubKeyRing {
	ring := &mockPubKeyRing{}
	for _, k := range keys {
		ring.On("FindPubKey", k.addr).Return(k.pubKey, nil)
	}
	return ring
}

// newTestBuilder returns a builder with a seeded source of randomness.
func newTestBuilder(params *netparams.Params, seed int64) *Builder {
	return NewBuilder(params, WithRand(rand.New(rand.NewSource(seed))))
}

// outPoints returns the outpoints of coins.
func outPoints(coins []Coin) []wire.OutPoint {
	ops := make([]wire.OutPoint, len(coins))
	for i := range coins {
		ops[i] = coins[i].OutPoint
	}
	return ops
}
