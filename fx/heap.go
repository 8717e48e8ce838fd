// File: heap.go
// Role: The single- and double-cube divisor priority heaps. Both implement
// container/heap.Interface ordered by Weight descending, each element
// carrying its own heapIdx for O(log n) Fix/Remove — FX's incremental
// divisor maintenance needs exactly this, unlike prim_kruskal.Kruskal's
// one-shot sort.Slice, which never revisits an already-ranked weight.
package fx

import "container/heap"

type singleHeap []*singleDivisor

func (h singleHeap) Len() int            { return len(h) }
func (h singleHeap) Less(i, j int) bool  { return h[i].Weight > h[j].Weight }
func (h singleHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIdx = i
	h[j].heapIdx = j
}
func (h *singleHeap) Push(x any) {
	sd := x.(*singleDivisor)
	sd.heapIdx = len(*h)
	*h = append(*h, sd)
}
func (h *singleHeap) Pop() any {
	old := *h
	n := len(old)
	sd := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	sd.heapIdx = -1
	return sd
}

type doubleHeap []*doubleDivisor

func (h doubleHeap) Len() int           { return len(h) }
func (h doubleHeap) Less(i, j int) bool { return h[i].weight > h[j].weight }
func (h doubleHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIdx = i
	h[j].heapIdx = j
}
func (h *doubleHeap) Push(x any) {
	dd := x.(*doubleDivisor)
	dd.heapIdx = len(*h)
	*h = append(*h, dd)
}
func (h *doubleHeap) Pop() any {
	old := *h
	n := len(old)
	dd := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	dd.heapIdx = -1
	return dd
}

// removeSingle drops sd from the single heap (and the singles table) in
// O(log n); used when one of its two variables no longer coincides
// anywhere after an extraction touches its cubes.
func (m *Matrix) removeSingle(sd *singleDivisor) {
	delete(m.singles, packPair(sd.V1, sd.V2))
	if sd.heapIdx >= 0 {
		heap.Remove(m.sh, sd.heapIdx)
	}
}

// fixSingle re-establishes heap order for sd after its Weight changed.
func (m *Matrix) fixSingle(sd *singleDivisor) {
	if sd.heapIdx >= 0 {
		heap.Fix(m.sh, sd.heapIdx)
	}
}

func (m *Matrix) removeDouble(dd *doubleDivisor) {
	bucket := m.doubles[dd.fp]
	for i, cand := range bucket {
		if cand == dd {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(m.doubles, dd.fp)
	} else {
		m.doubles[dd.fp] = bucket
	}
	if dd.heapIdx >= 0 {
		heap.Remove(m.dh, dd.heapIdx)
	}
}

func (m *Matrix) fixDouble(dd *doubleDivisor) {
	if dd.heapIdx >= 0 {
		heap.Fix(m.dh, dd.heapIdx)
	}
}
