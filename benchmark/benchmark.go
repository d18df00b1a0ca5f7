package benchmark

import (
	"errors"
	"log"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/pkg/profile"

	"example.com/fuzzy-control/core/inference"
	"example.com/fuzzy-control/core/rules"
)

// RunBenchmark drives concurrent inference calls with inputs drawn uniformly
// from each input variable's domain and prints per-goroutine latency
// percentiles in microseconds.
func RunBenchmark(base *rules.Base, profileCPU bool) {
	const numClientGoroutine = 8
	const numRequestPerClient = 10_000
	var mu sync.Mutex
	sg := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(numClientGoroutine)

	if profileCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	e := inference.NewEngine(nil, base)
	inputVars := base.Inputs()

	for i := numClientGoroutine; i > 0; i-- {
		go func(seed int64) {
			hg := hdrhistogram.New(1, 50000, 5)
			rng := rand.New(rand.NewSource(seed))

			defer wg.Done()
			<-sg
			for j := numRequestPerClient; j > 0; j-- {
				in := make(map[string]float64, len(inputVars))
				for _, v := range inputVars {
					d := v.Domain()
					in[v.Name()] = d.Lo() + rng.Float64()*(d.Hi()-d.Lo())
				}

				t0 := time.Now()
				_, err := e.Infer(in)
				d := time.Since(t0)
				if err != nil {
					if errors.Is(err, inference.ErrNoRuleFired) {
						continue
					}
					log.Printf("Failed to run inference: %v", err)
					return
				}

				err = hg.RecordValue(d.Microseconds())
				if err != nil {
					log.Printf("Failed to record histogram value: %v", err)
					return
				}
			}
			mu.Lock()
			defer mu.Unlock()
			hg.PercentilesPrint(os.Stdout, 1, 1.0)
		}(int64(i))
	}
	t0 := time.Now()
	close(sg)
	wg.Wait()
	log.Print(time.Since(t0))
}
