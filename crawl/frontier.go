package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/fwojciec/bizextract"
	"github.com/fwojciec/bizextract/bloom"
)

var _ bizextract.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory crawl queue. Links pop in priority order and,
// within a priority, in the order they were pushed. URLs are deduplicated
// through a Bloom filter after normalization.
// It is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *linkHeap
	seq   int
}

// NewFrontier creates a Frontier sized for n URLs at the given false
// positive rate.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push queues a link without its fragment. It returns false if an
// equivalent URL was seen before.
func (f *Frontier) Push(link bizextract.DiscoveredLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i := strings.IndexByte(link.URL, '#'); i >= 0 {
		link.URL = link.URL[:i]
	}
	if f.seen.TestAndAdd(link.URL) {
		return false
	}
	heap.Push(f.queue, queuedLink{link: link, seq: f.seq})
	f.seq++
	return true
}

// Pop returns the next link. The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (bizextract.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return bizextract.DiscoveredLink{}, false
	}
	q, _ := heap.Pop(f.queue).(queuedLink)
	return q.link, true
}

// Len returns the number of queued links.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen reports whether an equivalent URL has been pushed.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(rawURL)
}

type queuedLink struct {
	link bizextract.DiscoveredLink
	seq  int
}

// linkHeap is a max-heap on priority with FIFO tie-breaking.
type linkHeap []queuedLink

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	if h[i].link.Priority != h[j].link.Priority {
		return h[i].link.Priority > h[j].link.Priority
	}
	return h[i].seq < h[j].seq
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	q, _ := x.(queuedLink)
	*h = append(*h, q)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
