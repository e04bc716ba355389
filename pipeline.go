package jigsaw

import (
	"context"
	"slices"
	"sync"

	"github.com/bodgit/jigsaw/grid"
)

// report is a worker's proposal for one frontier position.
type report struct {
	pos Position
	id  uint64
	o   grid.Orientation
}

func emitPositions(ctx context.Context, positions []Position) (<-chan Position, <-chan error) {
	out := make(chan Position)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, p := range positions {
			select {
			case out <- p:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

// frontierWorker only reads the layout; out must be large enough to hold a
// report for every position.
func frontierWorker(ctx context.Context, l *Layout, remaining []*candidate, in <-chan Position, out chan<- report) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for p := range in {
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}
			if i, o, ok := firstFit(l, p, remaining); ok {
				out <- report{pos: p, id: remaining[i].id, o: o}
			}
		}
	}()
	return errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// scanParallel searches every frontier position concurrently and then
// applies the proposals on the calling goroutine in frontier order,
// checking each one again against the placements made before it.
func (a *Assembler) scanParallel(ctx context.Context, l *Layout, remaining []*candidate) (int, []*candidate, error) {
	frontier := l.frontier()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	reports := make(chan report, len(frontier))

	positions, errc := emitPositions(ctx, frontier)
	errcList := []<-chan error{errc}
	for i := 0; i < a.workers; i++ {
		errcList = append(errcList, frontierWorker(ctx, l, remaining, positions, reports))
	}

	err := waitForPipeline(errcList...)
	if err != nil {
		// Unblock the emitter if a worker gave up first
		cancelFunc()
		for range positions {
		}
		return 0, remaining, err
	}
	close(reports)

	proposed := make(map[Position]report, len(frontier))
	for r := range reports {
		proposed[r.pos] = r
	}

	placed := 0
	for _, p := range frontier {
		r, ok := proposed[p]
		if !ok {
			continue
		}
		i := slices.IndexFunc(remaining, func(c *candidate) bool { return c.id == r.id })
		if i < 0 {
			continue
		}
		c := remaining[i]
		if !l.fits(p, &c.edges[r.o]) {
			continue
		}
		a.place(l, c.placement(p, r.o))
		remaining = slices.Delete(remaining, i, i+1)
		placed++
	}

	return placed, remaining, nil
}
