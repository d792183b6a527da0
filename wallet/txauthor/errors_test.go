// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bitlib/txbuild/wallet/txrules"
	"github.com/stretchr/testify/require"
)

// TestIsRecoverable checks which errors callers are expected to handle.
func TestIsRecoverable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		0: {err: &InsufficientFundsError{Sending: 1, Fee: 1}, want: true},
		1: {err: &OutputTooSmallError{Value: 1, Minimum: 2}, want: true},
		2: {
			err:  fmt.Errorf("build: %w", &InsufficientFundsError{}),
			want: true,
		},
		3: {err: ErrUnsupportedScript, want: false},
		4: {err: ErrPubKeyNotFound, want: false},
		5: {err: ErrSignerNotFound, want: false},
		6: {err: ErrEmptyFunding, want: false},
		7: {err: errors.New("other"), want: false},
		8: {err: nil, want: false},
	}

	for i, test := range tests {
		require.Equal(t, test.want, IsRecoverable(test.err), "test %d",
			i)
	}
}

// TestOutputTooSmallErrorIsDust checks that an output below the minimum
// matches the dust rule violation.
func TestOutputTooSmallErrorIsDust(t *testing.T) {
	t.Parallel()

	var err error = &OutputTooSmallError{Value: 1, Minimum: 2}
	require.ErrorIs(t, err, txrules.ErrOutputIsDust)
}
