// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// Signer produces signatures with a single private key.
type Signer interface {
	// SignHash signs hash and returns the signature with the hash type
	// byte appended, ready for a signature script.  rand may be used by
	// signers whose signatures are not deterministic.
	SignHash(hash *chainhash.Hash, rand io.Reader) ([]byte, error)
}

// PrivKeyRing finds the signer for a public key.
type PrivKeyRing interface {
	FindSigner(pubKey *btcutil.AddressPubKey) (Signer, error)
}

// GenerateSignatures signs every request with the matching signer of keyRing.
// The signatures are returned in request order.
func GenerateSignatures(requests []SigningRequest, keyRing PrivKeyRing,
	rand io.Reader) ([][]byte, error) {

	sigs := make([][]byte, len(requests))
	for i := range requests {
		req := &requests[i]

		signer, err := keyRing.FindSigner(req.PubKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v: %v", ErrSignerNotFound,
				req.PubKey, err)
		}
		if signer == nil {
			return nil, fmt.Errorf("%w: %v", ErrSignerNotFound,
				req.PubKey)
		}

		sig, err := signer.SignHash(&req.Hash, rand)
		if err != nil {
			return nil, fmt.Errorf("unable to sign input %d: %w", i,
				err)
		}
		sigs[i] = sig
	}

	log.Debugf("Generated %d %s", len(sigs),
		pickNoun(len(sigs), "signature", "signatures"))

	return sigs, nil
}

// FinalizeTransaction attaches one signature per funding input and returns
// the signed transaction.
func FinalizeTransaction(unsigned *UnsignedTx,
	sigs [][]byte) (*wire.MsgTx, error) {

	if len(sigs) != len(unsigned.funding) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSignatureCount,
			len(sigs), len(unsigned.funding))
	}

	tx := unsigned.Tx()
	for i, txIn := range tx.TxIn {
		pubKey := unsigned.requests[i].PubKey.ScriptAddress()

		sigScript, err := txscript.NewScriptBuilder().
			AddData(sigs[i]).
			AddData(pubKey).
			Script()
		if err != nil {
			return nil, err
		}
		txIn.SignatureScript = sigScript
	}

	log.Debugf("Finalized transaction %v", tx.TxHash())

	return tx, nil
}
