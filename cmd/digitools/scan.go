package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/Garik-/digitools/pkg/elektron"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

type result struct {
	index    int
	name     string
	sounds   int
	failures int
	err      error
}

type job struct {
	index int
	name  string
}

func loadFile(j job) *result {
	out := &result{index: j.index, name: j.name}

	data, err := os.ReadFile(j.name)
	if err != nil {
		out.err = err
		return out
	}

	bank, err := elektron.Load(data)
	if bank != nil {
		out.sounds = len(bank.Sounds)
		out.failures = len(bank.Failures)
	}
	out.err = err
	return out
}

func readList(r io.Reader) <-chan job {
	out := make(chan job)

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)

	go func() {
		defer close(out)
		for i := 0; scanner.Scan(); {
			name := strings.TrimSpace(scanner.Text())
			if name == "" {
				continue
			}
			out <- job{index: i, name: name}
			i++
		}
	}()

	return out
}

// loadWorker loads the listed files on a pool of at most workers goroutines.
// The result channel is closed once every submitted file is done.
func loadWorker(ctx context.Context, jobs <-chan job, workers int) (<-chan *result, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}

	out := make(chan *result)

	go func() {
		log := scanLog.Named("loadWorker")
		var wg sync.WaitGroup

		defer func() {
			wg.Wait()
			pool.Release()
			close(out)
		}()

		send := func(r *result) {
			select {
			case out <- r:
			case <-ctx.Done():
				log.Debug("context done", zap.String("name", r.name))
			}
		}

		// drain on cancel so readList can exit
		defer func() {
			for range jobs {
			}
		}()

		for j := range jobs {
			if ctx.Err() != nil {
				log.Debug("context done")
				return
			}

			j := j
			wg.Add(1)
			err := pool.Submit(func() {
				defer wg.Done()
				send(loadFile(j))
			})
			if err != nil {
				wg.Done()
				send(&result{index: j.index, name: j.name, err: err})
			}
		}
	}()

	return out, nil
}

// scanFiles loads every file named in list and prints one summary line per
// file, in list order.
func scanFiles(parent context.Context, cfg config, list io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	results, err := loadWorker(ctx, readList(list), cfg.Workers)
	if err != nil {
		return err
	}

	var all []*result
	var failed int
	for r := range results {
		scanLog.Debug("result", zap.String("name", r.name), zap.Int("sounds", r.sounds), zap.Error(r.err))
		if r.err != nil {
			failed++
		}
		all = append(all, r)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].index < all[j].index })

	for _, r := range all {
		if r.err != nil {
			fmt.Fprintf(w, "%s: %d sounds, %d skipped, error: %v\n", r.name, r.sounds, r.failures, r.err)
			continue
		}
		fmt.Fprintf(w, "%s: %d sounds, %d skipped\n", r.name, r.sounds, r.failures)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(all))
	}
	return nil
}
