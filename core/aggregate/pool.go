package aggregate

import (
	"sync"
	"sync/atomic"
)

// parallel calls fn(i) for every i in [0, n) on at most workers goroutines
// and returns when all calls are done. Workers claim indices from a shared
// counter; each call must write only to its own index of caller-owned
// output.
func parallel(workers, n int, fn func(i int)) {
	workers = min(workers, n)
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Go(func() {
			for {
				i := int(next.Add(1) - 1)
				if i >= n {
					return
				}
				fn(i)
			}
		})
	}
	wg.Wait()
}
