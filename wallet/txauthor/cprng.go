// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// Rand is the source of randomness used to shuffle the selected funding and
// to pick the position of the change output.  *math/rand.Rand satisfies it,
// which keeps builds reproducible under test when seeded.
type Rand interface {
	// Intn returns a uniformly distributed integer in [0, n).
	Intn(n int) int

	// Shuffle pseudo-randomizes the order of n elements using swap.
	Shuffle(n int, swap func(i, j int))
}

// cprng is the default Rand.  It is seeded from crypto/rand and safe for
// concurrent use.
var cprng Rand = newLockedRand()

// lockedRand serializes access to a math/rand source.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand() *lockedRand {
	var seed int64
	err := binary.Read(crand.Reader, binary.LittleEndian, &seed)
	if err != nil {
		panic("txauthor: unable to seed random source: " + err.Error())
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.r.Intn(n)
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.r.Shuffle(n, swap)
}
