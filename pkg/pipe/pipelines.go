// Package pipe provides channel combinators for streams of results. Failed
// results stay ordinary values all the way through a pipeline; nothing here
// drops an error silently.
package pipe

import (
	"sync"

	"github.com/Philanthropists/checked/pkg/result"
)

// Handler transforms a value, reporting success or failure as a result.
type Handler[T, K any] func(T) result.Result[K]

// OrDone relays from c until either c or done is closed.
func OrDone[T any](done <-chan struct{}, c <-chan T) <-chan T {
	stream := make(chan T)

	go func() {
		defer close(stream)

		for {
			select {
			case <-done:
				return
			case v, ok := <-c:
				if !ok {
					return
				}
				select {
				case stream <- v:
				case <-done:
				}
			}
		}
	}()

	return stream
}

// FanIn multiplexes multiple channels into a single one.
func FanIn[T any](done <-chan struct{}, channels ...<-chan T) <-chan T {
	var wg sync.WaitGroup
	out := make(chan T)

	forward := func(c <-chan T) {
		defer wg.Done()

		for v := range OrDone(done, c) {
			select {
			case <-done:
				return
			case out <- v:
			}
		}
	}

	wg.Add(len(channels))
	for _, c := range channels {
		go forward(c)
	}

	go func() {
		defer close(out)
		wg.Wait()
	}()

	return out
}

// Tee duplicates one stream into two.
func Tee[T any](done <-chan struct{}, in <-chan T) (_, _ <-chan T) {
	out1 := make(chan T)
	out2 := make(chan T)

	go func() {
		defer close(out1)
		defer close(out2)

		for val := range OrDone(done, in) {
			// intentional shadowing
			var out1, out2 = out1, out2

			for i := 0; i < 2; i++ {
				select {
				case out1 <- val:
					out1 = nil
				case out2 <- val:
					out2 = nil
				}
			}
		}
	}()

	return out1, out2
}

// Transform applies h to every value of in, emitting one result per value.
func Transform[T, K any](done <-chan struct{}, in <-chan T, h Handler[T, K]) <-chan result.Result[K] {
	out := make(chan result.Result[K])

	go func() {
		defer close(out)

		for val := range OrDone(done, in) {
			select {
			case <-done:
				return
			case out <- h(val):
			}
		}
	}()

	return out
}

// ConcurrentTransform is Transform with up to workers goroutines applying h.
// Output order is not preserved.
func ConcurrentTransform[T, K any](done <-chan struct{}, workers int, in <-chan T, h Handler[T, K]) <-chan result.Result[K] {
	if workers <= 0 {
		workers = 1
	}

	out := make(chan result.Result[K], workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()

			for val := range OrDone(done, in) {
				select {
				case <-done:
					return
				case out <- h(val):
				}
			}
		}()
	}

	go func() {
		defer close(out)
		wg.Wait()
	}()

	return out
}

// Values forwards the values of successful results and hands every error to
// onErr. onErr may be nil when failures only need to be discarded.
func Values[T any](done <-chan struct{}, in <-chan result.Result[T], onErr func(error)) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		for res := range OrDone(done, in) {
			v, err := res.Unwrap()
			if err != nil {
				if onErr != nil {
					onErr(err)
				}
				continue
			}

			select {
			case <-done:
				return
			case out <- v:
			}
		}
	}()

	return out
}

// Drain consumes in until it is closed or done fires.
func Drain[T any](done <-chan struct{}, in <-chan T) {
	if in == nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case _, ok := <-in:
			if !ok {
				return
			}
		}
	}
}
