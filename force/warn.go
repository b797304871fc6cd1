package force

import (
	"log"
	"sync/atomic"
)

// degenerateWarnLimit caps how many times each kind of geometric
// degeneracy gets logged, per spec.md §9's instruction to surface these
// as warnings without changing the documented fallback behavior.
const degenerateWarnLimit = 5

var (
	zeroLengthBondWarnings int32
	colinearBendWarnings   int32
	colinearTorsionWarnings int32
)

func warnOnce(counter *int32, what string) {
	if atomic.AddInt32(counter, 1) <= degenerateWarnLimit {
		log.Printf("force: degenerate geometry encountered: %s", what)
	}
}
