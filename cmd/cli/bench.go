package main

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type benchResult struct {
	Count    int
	Errors   int
	Avg      time.Duration
	Duration time.Duration
}

func (r benchResult) String() string {
	throughput := 0.0
	if r.Duration > 0 {
		throughput = float64(r.Count) / r.Duration.Seconds()
	}
	return fmt.Sprintf("count=%d errors=%d avg=%s throughput=%.2f req/s", r.Count, r.Errors, r.Avg, throughput)
}

func runBenchmark(parent context.Context, a *api, productID, userID string, duration time.Duration, vus int) benchResult {
	if parent == nil {
		parent = context.Background()
	}
	var mu sync.Mutex
	var total time.Duration
	res := benchResult{Duration: duration}

	ctx, cancel := context.WithTimeout(parent, duration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < vus; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				start := time.Now()
				_, err := a.Preview(ctx, productID, userID)
				if ctx.Err() != nil {
					return
				}
				mu.Lock()
				if err != nil {
					res.Errors++
				} else {
					res.Count++
					total += time.Since(start)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if res.Count > 0 {
		res.Avg = total / time.Duration(res.Count)
	}
	return res
}
