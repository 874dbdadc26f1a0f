package allocator

import "sync"

// AllocateParallel is Allocate with the per-order work sharded across a
// bounded pool of goroutines. Orders are independent once the input has been
// partitioned and deduplicated, so only those per-order passes run
// concurrently; dedup and tie-breaks still follow original input order, and
// the merged output is identical to the sequential path.
func AllocateParallel(rows []RawRow, workers int) (*Result, error) {
	if workers <= 1 {
		return Allocate(rows)
	}

	p, res, err := prepare(rows)
	if err != nil {
		return nil, err
	}

	if workers > len(p.orders) {
		workers = len(p.orders)
	}
	if workers <= 1 {
		for _, order := range p.orders {
			res.Records = append(res.Records, allocateOrder(order, p.discountNames)...)
		}
		return res, nil
	}

	// Each worker writes only its own order slots, so results need no lock.
	results := make([][]CleanedRecord, len(p.orders))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = allocateOrder(p.orders[i], p.discountNames)
			}
		}()
	}

	for i := range p.orders {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Merge in order-group order to keep output deterministic.
	for _, recs := range results {
		res.Records = append(res.Records, recs...)
	}

	return res, nil
}
