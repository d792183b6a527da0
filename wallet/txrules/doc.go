// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package txrules provides functions that help establish whether or not a
transaction output abides by the non-consensus rules the builder relies on,
and the fee charged for a transaction of a given size.

Minimum Output Value

Outputs paying less than the network's minimum output value are not relayed.
Requested outputs below the minimum are rejected, and change below the
minimum is never created; it is left to the miner instead.

Fee Per KB Calculation

The fee is charged for every started kilobyte, with integer division:

    fee = (1 + size/1000) * feeRatePerKb

where size is the upper bound serialize size from package txsizes.  A
transaction of exactly 1000 bytes pays for two kilobytes.
*/
package txrules
