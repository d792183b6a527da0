// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitlib/txbuild/internal/prompt"
	"github.com/bitlib/txbuild/internal/zero"
	"github.com/bitlib/txbuild/wallet/keyring"
	"github.com/btcsuite/btcd/btcutil"
)

// readKeys adds every WIF encoded key of r to ring.  Blank lines and lines
// starting with # are ignored.
func readKeys(r io.Reader, ring *keyring.Ring) error {
	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := addWIF(ring, line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	return scanner.Err()
}

func addWIF(ring *keyring.Ring, encoded string) error {
	wif, err := btcutil.DecodeWIF(encoded)
	if err != nil {
		return err
	}
	_, err = ring.AddWIF(wif)
	return err
}

// loadKeys fills ring from the key file, or prompts for a single key when no
// key file is configured.
func loadKeys(cfg *config, ring *keyring.Ring) error {
	if cfg.KeyFile == "" {
		key, err := prompt.Secret("WIF private key")
		if err != nil {
			return errContext(err, "failed to read private key")
		}
		defer zero.Bytes(key)

		return addWIF(ring, string(key))
	}

	f, err := os.Open(cfg.KeyFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return readKeys(f, ring)
}
