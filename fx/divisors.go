// File: divisors.go
// Role: The single- and double-cube divisor records themselves, and the
// fingerprint/canonicalization scheme that lets two cube pairs from two
// entirely different nodes be recognized as the same double-cube divisor
// (spec §4.6 "divisor identification", §9 "hash table collisions").
package fx

// singleDivisor is an unordered pair of variables that coincide (appear
// together as literals) in two or more cubes anywhere in the matrix.
// Weight is coincidence count minus 2: the net literals saved by giving
// the pair its own node (which itself costs 2 literals) and referencing
// it from every coincident cube instead of repeating both literals.
type singleDivisor struct {
	V1, V2  int32
	Weight  int
	heapIdx int
}

// cubePair is one realization of a doubleDivisor: two cube rows (C1, C2,
// canonically ordered), the literal counts of their non-base remainders,
// and the size of their common (base) part.
type cubePair struct {
	C1, C2                int32
	NLits1, NLits2, NBase int
	next                  *cubePair
	divisor               *doubleDivisor
}

// doubleDivisor is a cube-free, order-normalized pair of cube fragments —
// "cube1 nonbase OR cube2 nonbase" — shared by every cubePair whose
// non-base literal structure matches it exactly. fp is its fingerprint;
// nonBase1/nonBase2 are its canonical identity (sorted literal keys,
// side 1 having the lexicographically smaller first key) and the only
// thing collision resolution compares.
type doubleDivisor struct {
	fp        uint64
	nonBase1  []lit
	nonBase2  []lit
	weight    int
	heapIdx   int
	pairs     *cubePair
	pairCount int
}

// packPair orders (v1,v2) so the same unordered pair always hashes to the
// same map key regardless of discovery order.
func packPair(v1, v2 int32) uint64 {
	if v1 > v2 {
		v1, v2 = v2, v1
	}
	return uint64(uint32(v1))<<32 | uint64(uint32(v2))
}

// sameLitSlice reports whether a and b hold the same literals in the same
// order (both are already sorted by the caller).
func sameLitSlice(a, b []lit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fingerprint hashes the two canonical non-base literal lists, applying a
// distinct prime per position on each side so "b,c" and "c,b" within one
// side collide (both canonicalize to the same sorted list already) but a
// position swap across sides does not accidentally cancel out.
func fingerprint(side1, side2 []lit) uint64 {
	const (
		offset uint64 = 14695981039346656037
		prime  uint64 = 1099511628211
		p1     uint64 = 1000003
		p2     uint64 = 1000033
	)
	h := offset
	for i, k := range side1 {
		h ^= uint64(k) * (p1 + uint64(i)*2)
		h *= prime
	}
	h ^= 0x9e3779b97f4a7c15
	for i, k := range side2 {
		h ^= uint64(k) * (p2 + uint64(i)*2)
		h *= prime
	}
	return h
}

// canonicalSides orders two literal-key lists so the side whose first
// (smallest) key is lexicographically smaller becomes side 1, matching
// spec §9's "cube with the smaller leading literal is cube 1" rule.
func canonicalSides(a, b []lit) (side1, side2 []lit, swapped bool) {
	if len(a) == 0 || (len(b) > 0 && a[0] <= b[0]) {
		return a, b, false
	}
	return b, a, true
}

// sortLits sorts a slice of lit values ascending in place (insertion sort:
// these lists are always short, the non-base literal count of one cube).
func sortLits(s []lit) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// findOrCreateDouble looks up the double-cube divisor matching (side1,
// side2) by fingerprint, resolving collisions by full comparison, creating
// a new entry (and heap slot) on first sight.
func (m *Matrix) findOrCreateDouble(side1, side2 []lit) *doubleDivisor {
	fp := fingerprint(side1, side2)
	for _, cand := range m.doubles[fp] {
		if sameLitSlice(cand.nonBase1, side1) && sameLitSlice(cand.nonBase2, side2) {
			return cand
		}
	}
	dd := &doubleDivisor{fp: fp, nonBase1: side1, nonBase2: side2, heapIdx: -1}
	m.doubles[fp] = append(m.doubles[fp], dd)
	return dd
}
