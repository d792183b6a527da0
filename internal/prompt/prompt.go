// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package prompt reads secrets from the terminal.
package prompt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrEmptySecret is returned when no secret was entered.
var ErrEmptySecret = errors.New("no secret entered")

// Secret prompts for a secret on standard error and reads it from standard
// input without echo when standard input is a terminal.  The caller should
// clear the returned bytes once done with them.
func Secret(prefix string) ([]byte, error) {
	fmt.Fprintf(os.Stderr, "%s: ", prefix)
	defer fmt.Fprintln(os.Stderr)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		if err != nil {
			return nil, err
		}
		return trimSecret(secret)
	}

	return readSecret(bufio.NewReader(os.Stdin))
}

// readSecret reads a single line holding a secret from r.
func readSecret(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return trimSecret(line)
}

// trimSecret strips surrounding white space and rejects empty secrets.
func trimSecret(secret []byte) ([]byte, error) {
	secret = bytes.TrimSpace(secret)
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return secret, nil
}
