// Package parallel adapts utils/concurrency's resource-manager pattern
// into a bounded fan-out over independent [bigint.Int] destinations.
// Every task here owns a distinct destination; the worker count only
// bounds how many run at once.
package parallel

import (
	"sync"

	"github.com/ctcrypto/bigint/bigint"
	"github.com/ctcrypto/bigint/word"
)

// manager is a channel-based slot pool, the same shape as
// utils/concurrency.ResourceManager[T] with T fixed to struct{} (the
// slots carry no payload; they exist only to bound concurrency).
type manager struct {
	sync.WaitGroup
	slots  chan struct{}
	errors chan error
}

func newManager(workers int) *manager {
	if workers < 1 {
		workers = 1
	}
	slots := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		slots <- struct{}{}
	}
	return &manager{slots: slots, errors: make(chan error, workers)}
}

func (m *manager) run(task func() error) {
	m.Add(1)
	go func() {
		defer m.Done()
		if len(m.errors) != 0 {
			return
		}
		<-m.slots
		if err := task(); err != nil && len(m.errors) < cap(m.errors) {
			m.errors <- err
		}
		m.slots <- struct{}{}
	}()
}

func (m *manager) wait() error {
	m.WaitGroup.Wait()
	if len(m.errors) != 0 {
		return <-m.errors
	}
	return nil
}

// MarshalAll marshals each src[i] into dst[i] concurrently, using up
// to workers goroutines at a time. Every (src[i], dst[i]) pair is a
// distinct destination, so this satisfies the concurrency model's
// precondition by construction. Returns the first error encountered,
// if any.
func MarshalAll[T word.Word](dst [][]byte, src []*bigint.Int[T], e bigint.Endianness, workers int) error {
	if len(dst) != len(src) {
		panic("parallel.MarshalAll: len(dst) != len(src)")
	}
	m := newManager(workers)
	for i := range src {
		i := i
		m.run(func() error {
			return bigint.Marshal(dst[i], src[i], e)
		})
	}
	return m.wait()
}

// UnmarshalAll unmarshals each src[i] into dst[i] concurrently, using
// up to workers goroutines at a time.
func UnmarshalAll[T word.Word](dst []*bigint.Int[T], src [][]byte, e bigint.Endianness, workers int) error {
	if len(dst) != len(src) {
		panic("parallel.UnmarshalAll: len(dst) != len(src)")
	}
	m := newManager(workers)
	for i := range src {
		i := i
		m.run(func() error {
			return bigint.Unmarshal(dst[i], src[i], e)
		})
	}
	return m.wait()
}
