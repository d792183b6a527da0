// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitlib/txbuild/wallet/keyring"
	"github.com/bitlib/txbuild/wallet/txauthor"
	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"
	"github.com/lightningnetwork/lnd/fn/v2"
)

var newlineBytes = []byte{'\n'}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Stderr.Write(newlineBytes)
	os.Exit(1)
}

func errContext(err error, context string) error {
	return fmt.Errorf("%s: %w", context, err)
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		if errors.Is(err, errShowSubsystems) {
			os.Exit(0)
		}
		fatalf("%v", err)
	}

	if err := initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename)); err != nil {
		fatalf("%v", err)
	}
	defer logRotator.Close()

	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		fatalf("%v", err)
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.Errorf("%v", err)
		logRotator.Close()
		os.Exit(1)
	}
}

// run builds the configured transaction and writes it to w, hex encoded when
// signed and base64 encoded as a PSBT otherwise.
func run(cfg *config, w io.Writer) error {
	coins, err := readCoinFile(cfg.CoinFile, cfg.TipHeight)
	if err != nil {
		return errContext(err, "failed to read coins")
	}

	builder := txauthor.NewBuilder(
		cfg.params, txauthor.WithLockTime(cfg.LockTime),
	)
	if cfg.MaxSpendable {
		amount := builder.MaxSpendableAmount(coins, cfg.FeeRate.Amount)
		_, err := fmt.Fprintln(w, amount)
		return err
	}

	if err := addOutputs(cfg, builder); err != nil {
		return err
	}

	changeAddr, err := changeAddress(cfg)
	if err != nil {
		return err
	}

	ring := keyring.New(cfg.params.Params)
	if err := loadKeys(cfg, ring); err != nil {
		return errContext(err, "failed to load keys")
	}

	unsigned, err := builder.CreateUnsignedTransaction(
		coins, changeAddr, ring, cfg.FeeRate.Amount,
	)
	if err != nil {
		if txauthor.IsRecoverable(err) {
			return errContext(err, "unable to fund transaction")
		}
		return errContext(err, "failed to create unsigned transaction")
	}
	log.Infof("Funded transaction spending %d %s:\n%v",
		len(unsigned.Funding()),
		pickNoun(len(unsigned.Funding()), "coin", "coins"), unsigned)

	if cfg.PSBT {
		packet, err := unsigned.Packet()
		if err != nil {
			return errContext(err, "failed to create PSBT")
		}
		encoded, err := packet.B64Encode()
		if err != nil {
			return errContext(err, "failed to encode PSBT")
		}
		_, err = fmt.Fprintln(w, encoded)
		return err
	}

	sigs, err := txauthor.GenerateSignatures(
		unsigned.SigningRequests(), ring, rand.Reader,
	)
	if err != nil {
		return errContext(err, "failed to sign transaction")
	}
	tx, err := txauthor.FinalizeTransaction(unsigned, sigs)
	if err != nil {
		return errContext(err, "failed to finalize transaction")
	}

	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return err
	}

	log.Infof("Signed transaction %v", tx.TxHash())

	_, err = fmt.Fprintln(w, hex.EncodeToString(buf.Bytes()))
	return err
}

// addOutputs adds the configured payments and data to builder.
func addOutputs(cfg *config, builder *txauthor.Builder) error {
	for _, output := range cfg.Outputs {
		addr, err := btcutil.DecodeAddress(output.Address, cfg.params.Params)
		if err != nil {
			return fmt.Errorf("invalid address `%s`: %w",
				output.Address, err)
		}
		if err := builder.AddOutput(addr, output.Amount); err != nil {
			return fmt.Errorf("invalid output to %s: %w",
				output.Address, err)
		}
	}

	if cfg.NullData != nil {
		if err := builder.AddNullData(cfg.NullData); err != nil {
			return errContext(err, "invalid null data")
		}
	}

	return nil
}

// changeAddress returns the configured change address, if any.
func changeAddress(cfg *config) (fn.Option[btcutil.Address], error) {
	if !cfg.ChangeAddr.ExplicitlySet() || cfg.ChangeAddr.Value == "" {
		return fn.None[btcutil.Address](), nil
	}

	addr, err := btcutil.DecodeAddress(cfg.ChangeAddr.Value, cfg.params.Params)
	if err != nil {
		return fn.None[btcutil.Address](), fmt.Errorf("invalid change "+
			"address `%s`: %w", cfg.ChangeAddr.Value, err)
	}
	return fn.Some(addr), nil
}
