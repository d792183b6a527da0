// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

// buildTestTx returns an unsigned transaction spending three coins of two
// keys.
func buildTestTx(t *testing.T, opts ...Option) *UnsignedTx {
	t.Helper()

	a := newTestKey(t, 1)
	b := newTestKey(t, 2)
	pool := []Coin{
		a.coin(0, 1, 40_000),
		b.coin(1, 2, 30_000),
		a.coin(2, 3, 50_000),
	}

	opts = append([]Option{WithRand(rand.New(rand.NewSource(3)))}, opts...)
	builder := NewBuilder(testParams, opts...)
	require.NoError(t, builder.AddOutput(b.addr, 100_000))
	require.NoError(t, builder.AddNullData([]byte("memo")))

	unsigned, err := builder.CreateUnsignedTransaction(
		pool, fn.None[btcutil.Address](), newKeyRing(a, b), 1000,
	)
	require.NoError(t, err)
	require.Len(t, unsigned.Funding(), 3)

	return unsigned
}

// TestSignatureHash checks every signing hash against the script engine's
// legacy signature hash.
func TestSignatureHash(t *testing.T) {
	t.Parallel()

	for _, lockTime := range []uint32{0, 840_000, 1_700_000_000} {
		unsigned := buildTestTx(t, WithLockTime(lockTime))
		tx := unsigned.Tx()
		funding := unsigned.Funding()
		require.Equal(t, lockTime, tx.LockTime)

		for i, req := range unsigned.SigningRequests() {
			want, err := txscript.CalcSignatureHash(
				funding[i].PkScript, txscript.SigHashAll, tx, i,
			)
			require.NoError(t, err)
			require.Equal(t, want, req.Hash[:],
				"lock time %d input %d", lockTime, i)
		}
	}
}

// TestSignatureHashCommitsToLockTime checks that the signing hashes change
// with the lock time.
func TestSignatureHashCommitsToLockTime(t *testing.T) {
	t.Parallel()

	final := buildTestTx(t).SigningRequests()
	locked := buildTestTx(t, WithLockTime(840_000)).SigningRequests()

	require.Len(t, locked, len(final))
	for i := range final {
		require.NotEqual(t, final[i].Hash, locked[i].Hash)
	}
}

// TestUnsignedTxSkeleton checks the shape of the unsigned transaction.
func TestUnsignedTxSkeleton(t *testing.T) {
	t.Parallel()

	unsigned := buildTestTx(t)
	tx := unsigned.Tx()
	funding := unsigned.Funding()

	require.Equal(t, int32(1), tx.Version)
	require.Zero(t, tx.LockTime)
	require.Len(t, tx.TxIn, len(funding))
	for i, txIn := range tx.TxIn {
		require.Equal(t, funding[i].OutPoint, txIn.PreviousOutPoint)
		require.Empty(t, txIn.SignatureScript)
		require.Equal(t, uint32(wire.MaxTxInSequenceNum), txIn.Sequence)
	}
	require.Equal(t, unsigned.Outputs(), tx.TxOut)
}

// TestUnsignedTxCopies checks that accessors hand out copies.
func TestUnsignedTxCopies(t *testing.T) {
	t.Parallel()

	unsigned := buildTestTx(t)
	fee := unsigned.Fee()

	outputs := unsigned.Outputs()
	outputs[0].Value++
	outputs[0].PkScript[0] ^= 0xff

	funding := unsigned.Funding()
	funding[0].Amount++
	funding[0].PkScript[0] ^= 0xff

	requests := unsigned.SigningRequests()
	requests[0].Hash[0] ^= 0xff

	require.Equal(t, fee, unsigned.Fee())
	require.NotEqual(t, outputs[0].PkScript, unsigned.Outputs()[0].PkScript)
	require.NotEqual(t, funding[0].PkScript, unsigned.Funding()[0].PkScript)
	require.NotEqual(t, requests[0].Hash, unsigned.SigningRequests()[0].Hash)
}

// TestUnsignedTxOwnsFunding checks that changing the caller's coins after
// the build does not reach the unsigned transaction.
func TestUnsignedTxOwnsFunding(t *testing.T) {
	t.Parallel()

	key := newTestKey(t, 4)
	pool := []Coin{key.coin(0, 1, 500_000)}

	b := newTestBuilder(testParams, 1)
	require.NoError(t, b.AddOutput(key.addr, 100_000))

	unsigned, err := b.CreateUnsignedTransaction(
		pool, fn.None[btcutil.Address](), newKeyRing(key), 1000,
	)
	require.NoError(t, err)

	funding := unsigned.Funding()
	summary := unsigned.String()
	pkScript := append([]byte(nil), pool[0].PkScript...)

	for i := range pool[0].PkScript {
		pool[0].PkScript[i] ^= 0xff
	}
	pool[0].Amount = 1

	require.Equal(t, funding, unsigned.Funding())
	require.Equal(t, summary, unsigned.String())
	require.Equal(t, pkScript, unsigned.Funding()[0].PkScript)
}

// TestUnsignedTxPacket checks the unsigned packet handed to external
// signers.
func TestUnsignedTxPacket(t *testing.T) {
	t.Parallel()

	unsigned := buildTestTx(t)

	packet, err := unsigned.Packet()
	require.NoError(t, err)
	require.Equal(t, unsigned.Tx().TxHash(), packet.UnsignedTx.TxHash())
	require.Len(t, packet.Inputs, len(unsigned.Funding()))
	require.Len(t, packet.Outputs, len(unsigned.Outputs()))
	for _, in := range packet.Inputs {
		require.Equal(t, txscript.SigHashAll, in.SighashType)
	}

	encoded, err := packet.B64Encode()
	require.NoError(t, err)
	require.NotEmpty(t, encoded)
}

// TestUnsignedTxString checks the summary table.
func TestUnsignedTxString(t *testing.T) {
	t.Parallel()

	unsigned := buildTestTx(t)
	lines := strings.Split(strings.TrimSuffix(unsigned.String(), "\n"), "\n")

	require.Equal(t, "Fee: "+unsigned.Fee().String(), lines[0])

	rows := max(len(unsigned.Funding()), len(unsigned.Outputs()))
	require.Len(t, lines, rows+1)
	require.Contains(t, lines[1], "->")

	// The data carrier output has no address.
	require.Contains(t, unsigned.String(), "Unknown")
}
