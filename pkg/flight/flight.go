// Package flight coalesces identical work within a single scope, such as one
// request. Results live only as long as the Group.
package flight

import "sync"

type Group[K comparable, V any] struct {
	mu   sync.Mutex
	jobs map[K]*job[V]
}

type job[V any] struct {
	val  V
	err  error
	done chan struct{}
}

func NewGroup[K comparable, V any]() *Group[K, V] {
	return &Group[K, V]{jobs: make(map[K]*job[V])}
}

// Do runs work once per key. Callers arriving while the key is in flight, or
// after it finished, get the same value and error.
func (g *Group[K, V]) Do(k K, work func() (V, error)) (V, error) {
	g.mu.Lock()
	if j, ok := g.jobs[k]; ok {
		g.mu.Unlock()
		<-j.done
		return j.val, j.err
	}
	j := &job[V]{done: make(chan struct{})}
	g.jobs[k] = j
	g.mu.Unlock()

	defer close(j.done)
	j.val, j.err = work()
	return j.val, j.err
}

// Len reports how many distinct keys have been started.
func (g *Group[K, V]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.jobs)
}
