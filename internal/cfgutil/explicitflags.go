// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import "encoding/hex"

// ExplicitString is a string value implementing the flags.Marshaler and
// flags.Unmarshaler interfaces so it may be used as a config struct field.  It
// records whether the value was explicitly set by the flags package, so an
// empty change address can be told apart from an omitted one.
type ExplicitString struct {
	Value         string
	explicitlySet bool
}

// NewExplicitString creates a string flag with the provided default value.
func NewExplicitString(defaultValue string) *ExplicitString {
	return &ExplicitString{Value: defaultValue}
}

// ExplicitlySet returns whether the flag was explicitly set through the
// flags.Unmarshaler interface.
func (e *ExplicitString) ExplicitlySet() bool { return e.explicitlySet }

// MarshalFlag implements the flags.Marshaler interface.
func (e *ExplicitString) MarshalFlag() (string, error) { return e.Value, nil }

// UnmarshalFlag implements the flags.Unmarshaler interface.
func (e *ExplicitString) UnmarshalFlag(value string) error {
	e.Value = value
	e.explicitlySet = true
	return nil
}

// HexFlag is a byte slice given in hex on the command line.
type HexFlag []byte

// MarshalFlag implements the flags.Marshaler interface.
func (h HexFlag) MarshalFlag() (string, error) {
	return hex.EncodeToString(h), nil
}

// UnmarshalFlag implements the flags.Unmarshaler interface.
func (h *HexFlag) UnmarshalFlag(value string) error {
	b, err := hex.DecodeString(value)
	if err != nil {
		return err
	}
	*h = b
	return nil
}
