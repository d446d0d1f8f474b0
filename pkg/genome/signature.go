package genome

import (
	"encoding/binary"
	"math"
	"sort"
)

// Signature is the 128-bit genome fingerprint used to key the
// transposition cache (spec.md §3 "Signature", §8 scenario 5).
type Signature [16]byte

// murmur3-style 128-bit mixing constants (x64 variant).
const (
	sigC1 = 0x87c37b91114253d5
	sigC2 = 0x4cf5ad432745937f
)

// sigState accumulates a MurmurHash3 x64/128 hash over a stream of
// uint64 words. Genome signatures don't hash raw bytes off the wire —
// they hash a structured traversal — so this is a minimal word-at-a-
// time accumulator rather than the textbook block-of-16-bytes
// algorithm, kept bit-for-bit compatible with it when fed 16 bytes at a
// time (two uint64 words per block).
type sigState struct {
	h1, h2 uint64
	length uint64
}

func newSigState(seed uint64) *sigState {
	return &sigState{h1: seed, h2: seed}
}

func rotl64(x uint64, r uint) uint64 {
	return (x << r) | (x >> (64 - r))
}

func fmix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// writeBlock folds one 16-byte block (k1, k2) into the running state.
func (s *sigState) writeBlock(k1, k2 uint64) {
	k1 *= sigC1
	k1 = rotl64(k1, 31)
	k1 *= sigC2
	s.h1 ^= k1

	s.h1 = rotl64(s.h1, 27)
	s.h1 += s.h2
	s.h1 = s.h1*5 + 0x52dce729

	k2 *= sigC2
	k2 = rotl64(k2, 33)
	k2 *= sigC1
	s.h2 ^= k2

	s.h2 = rotl64(s.h2, 31)
	s.h2 += s.h1
	s.h2 = s.h2*5 + 0x38495ab5

	s.length += 16
}

// writeUint64 folds a single word, pairing it with a zero companion —
// used for odd-length tails (e.g. a trailing opcode with no following
// parameter word).
func (s *sigState) writeUint64(v uint64) {
	s.writeBlock(v, 0)
	s.length -= 8 // undo the phantom second word's length contribution
}

func (s *sigState) sum() Signature {
	s.h1 ^= s.length
	s.h2 ^= s.length

	s.h1 += s.h2
	s.h2 += s.h1

	s.h1 = fmix64(s.h1)
	s.h2 = fmix64(s.h2)

	s.h1 += s.h2
	s.h2 += s.h1

	var out Signature
	binary.LittleEndian.PutUint64(out[0:8], s.h1)
	binary.LittleEndian.PutUint64(out[8:16], s.h2)
	return out
}

// Signature computes the genome's 128-bit fingerprint: a depth-first
// traversal from Best appending (opcode, param, child_signatures),
// canonicalized for associative symbols by sorting their immediate
// children's signatures before folding them in (spec.md §8 scenario 5:
// "signature is identical regardless of the stored argument order for
// an Associative symbol").
//
// Only the active sub-DAG (spec.md I3) contributes: inactive loci never
// affect the signature, which is what lets mutation restricted to
// inactive loci leave the signature unchanged (spec.md §8 scenario 5).
func (g *Genome) Signature() Signature {
	memo := make(map[int]Signature)
	return g.signatureAt(g.Best, memo)
}

func (g *Genome) signatureAt(locus int, memo map[int]Signature) Signature {
	if sig, ok := memo[locus]; ok {
		return sig
	}
	gene := g.Genes[locus]
	s := newSigState(uint64(gene.Symbol.Opcode))
	s.writeUint64(uint64(gene.Symbol.Opcode))
	if gene.HasParam {
		s.writeUint64(math.Float64bits(gene.Param))
	}

	childSigs := make([][16]byte, len(gene.Args))
	for i, a := range gene.Args {
		childSigs[i] = g.signatureAt(a, memo)
	}
	if gene.Symbol.Associative {
		sort.Slice(childSigs, func(i, j int) bool {
			for b := 0; b < 16; b++ {
				if childSigs[i][b] != childSigs[j][b] {
					return childSigs[i][b] < childSigs[j][b]
				}
			}
			return false
		})
	}
	for _, cs := range childSigs {
		s.writeUint64(binary.LittleEndian.Uint64(cs[0:8]))
		s.writeUint64(binary.LittleEndian.Uint64(cs[8:16]))
	}

	sig := s.sum()
	memo[locus] = sig
	return sig
}
