package genome

// A block is a candidate subtree for automatic function/terminal
// definition (ADF/ADT): a locus whose reachable subtree is large enough
// to be worth factoring out into its own standalone genome. Ported from
// the shape of the original's kernel/gp/adf.cc (adf_core wraps an
// extracted individual; is_valid requires active_symbols() >= 2), since
// the distilled spec leaves block extraction optional but cheap once
// ActiveLoci/Signature exist.
const minBlockSize = 2

// Blocks returns every active locus whose subtree (the set of loci
// reachable from it) has at least minBlockSize members, in ascending
// locus order. These are the candidates a caller may pass to GetBlock
// to produce ADF/ADT symbols.
func (g *Genome) Blocks() []int {
	active := g.ActiveLoci()
	var out []int
	for i := range g.Genes {
		if _, ok := active[i]; !ok {
			continue
		}
		if g.subtreeSize(i) >= minBlockSize {
			out = append(out, i)
		}
	}
	return out
}

func (g *Genome) subtreeSize(locus int) int {
	seen := make(map[int]struct{})
	var visit func(int)
	visit = func(i int) {
		if _, ok := seen[i]; ok {
			return
		}
		seen[i] = struct{}{}
		for _, a := range g.Genes[i].Args {
			visit(a)
		}
	}
	visit(locus)
	return len(seen)
}

// GetBlock extracts the subtree rooted at locus into a standalone,
// self-contained Genome: a fresh, tightly-packed gene slice covering
// exactly the reachable set, with every argument index renumbered to
// the new layout and Best pointing at the copied root. The extracted
// genome has no patch region of its own (cfg.PatchSize 0) since every
// locus it contains was already a valid, resolved argument in the
// source genome.
func (g *Genome) GetBlock(locus int) *Genome {
	var order []int
	seen := make(map[int]int) // old locus -> new locus
	var visit func(int)
	visit = func(i int) {
		if _, ok := seen[i]; ok {
			return
		}
		seen[i] = -1 // reserve, index assigned after children so args stay forward-pointing
		for _, a := range g.Genes[i].Args {
			visit(a)
		}
		order = append(order, i)
	}
	visit(locus)

	// order is post-order (children before parent); reverse it so the
	// root comes first and every argument index still points forward,
	// matching invariant I1 in the source genome's layout.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	for newIdx, old := range order {
		seen[old] = newIdx
	}

	genes := make([]Gene, len(order))
	for newIdx, old := range order {
		src := g.Genes[old]
		cp := src
		if src.Args != nil {
			cp.Args = make([]int, len(src.Args))
			for k, a := range src.Args {
				cp.Args[k] = seen[a]
			}
		}
		genes[newIdx] = cp
	}

	return &Genome{
		Genes: genes,
		Best:  seen[locus],
		ss:    g.ss,
		cfg:   GenomeConfig{CodeLength: len(genes), PatchSize: 0, PMutation: g.cfg.PMutation},
	}
}
