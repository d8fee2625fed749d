// Package queue provides a generic priority queue with a fallible ordering,
// used to select the minimum front during a k-way merge
package queue

// Priority queue based on
// https://golang.org/pkg/container/heap/#example__priorityQueue

import (
	"container/heap"
	"fmt"
)

// LessFunc reports whether a should be popped before b.
// An error is sticky: once returned, the queue stops comparing and
// reports the error through Err.
type LessFunc[E any] func(a, b E) (bool, error)

// innerPriorityQueue implements heap.Interface and holds items
type innerPriorityQueue[E any] struct {
	items    []E
	lessFunc LessFunc[E]
	err      error
}

// PriorityQueue implemented using a heap
type PriorityQueue[E any] struct {
	ipq innerPriorityQueue[E]
}

// NewPriorityQueue creates a new heap based PriorityQueue using lessFunc as the comparison function.
// capacity preallocates room for that many items.
func NewPriorityQueue[E any](lessFunc LessFunc[E], capacity int) *PriorityQueue[E] {
	var pq PriorityQueue[E]
	pq.ipq.items = make([]E, 0, capacity)
	pq.ipq.lessFunc = lessFunc
	return &pq
}

// Len returns the number of items in the queue
func (pq *PriorityQueue[E]) Len() int {
	return pq.ipq.Len()
}

// Err returns the first error returned by the LessFunc, if any.
// After an error the heap order is unspecified.
func (pq *PriorityQueue[E]) Err() error {
	return pq.ipq.err
}

// Push adds x to the queue
func (pq *PriorityQueue[E]) Push(x E) {
	heap.Push(&pq.ipq, x)
}

// Pop removes and returns the next item in the queue
func (pq *PriorityQueue[E]) Pop() E {
	return heap.Pop(&pq.ipq).(E)
}

// Peek returns the next item in the queue without removing it
func (pq *PriorityQueue[E]) Peek() E {
	return pq.ipq.items[0]
}

// PeekUpdate reorders the backing heap after the item returned by Peek changed
func (pq *PriorityQueue[E]) PeekUpdate() {
	heap.Fix(&pq.ipq, 0)
}

// String prints the queue in heap order
func (pq *PriorityQueue[E]) String() string {
	return fmt.Sprint(pq.ipq.items)
}

func (pq *innerPriorityQueue[E]) Len() int {
	return len(pq.items)
}

func (pq *innerPriorityQueue[E]) Less(i, j int) bool {
	if pq.err != nil {
		return false
	}
	less, err := pq.lessFunc(pq.items[i], pq.items[j])
	if err != nil {
		pq.err = err
		return false
	}
	return less
}

func (pq *innerPriorityQueue[E]) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

func (pq *innerPriorityQueue[E]) Push(x any) {
	pq.items = append(pq.items, x.(E))
}

func (pq *innerPriorityQueue[E]) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	var zero E
	old[n-1] = zero // drop the reference
	pq.items = old[0 : n-1]
	return item
}
