package scoring

// Exact Shapley values for tree ensembles, computed with the polynomial-time
// path algorithm (Lundberg et al., "Consistent Individualized Feature
// Attribution for Tree Ensembles"). Instead of enumerating feature subsets,
// a single tree descent tracks, per unique split feature on the path, the
// fraction of subsets that send the instance down ("one fraction") versus the
// cover-weighted background ("zero fraction"), together with the permutation
// weights of all path lengths. Per tree the attributions sum exactly to
// tree(x) - E[tree].

// pathElement is one unique split feature on the current descent path.
// Index 0 holds a sentinel root entry with feature -1.
type pathElement struct {
	feature int
	zero    float64 // fraction of background weight flowing through the split
	one     float64 // 1 while the instance follows the split, else 0
	weight  float64 // permutation weight of subsets of this path length
}

// shapley accumulates this tree's attributions for x into phi.
func (t Tree) shapley(x []float64, phi []float64) {
	t.shapRecurse(x, phi, 0, nil, 1, 1, -1)
}

func (t Tree) shapRecurse(x, phi []float64, node int, parent []pathElement, pz, po float64, pf int) {
	path := make([]pathElement, len(parent), len(parent)+1)
	copy(path, parent)
	path = extendPath(path, pz, po, pf)

	n := t.Nodes[node]
	if n.isLeaf() {
		depth := len(path) - 1
		for i := 1; i <= depth; i++ {
			w := unwoundPathSum(path, depth, i)
			phi[path[i].feature] += w * (path[i].one - path[i].zero) * n.Value
		}
		return
	}

	hot, cold := n.Left, n.Right
	if !(x[n.Feature] < n.Threshold) {
		hot, cold = n.Right, n.Left
	}
	hotZero := t.Nodes[hot].Cover / n.Cover
	coldZero := t.Nodes[cold].Cover / n.Cover

	// a feature split twice on one path keeps a single path entry:
	// undo the previous extension and fold its fractions into this one
	iz, io := 1.0, 1.0
	for k := 1; k < len(path); k++ {
		if path[k].feature == n.Feature {
			iz, io = path[k].zero, path[k].one
			unwindPath(path, len(path)-1, k)
			path = path[:len(path)-1]
			break
		}
	}

	t.shapRecurse(x, phi, hot, path, hotZero*iz, io, n.Feature)
	t.shapRecurse(x, phi, cold, path, coldZero*iz, 0, n.Feature)
}

// extendPath appends a split feature to the path and redistributes the
// permutation weights over the now longer subset sizes.
func extendPath(path []pathElement, pz, po float64, feature int) []pathElement {
	depth := len(path)

	w := 0.0
	if depth == 0 {
		w = 1.0
	}
	path = append(path, pathElement{feature: feature, zero: pz, one: po, weight: w})

	for i := depth - 1; i >= 0; i-- {
		path[i+1].weight += po * path[i].weight * float64(i+1) / float64(depth+1)
		path[i].weight = pz * path[i].weight * float64(depth-i) / float64(depth+1)
	}

	return path
}

// unwindPath removes the element at idx, exactly inverting extendPath. The
// caller truncates the slice afterwards.
func unwindPath(path []pathElement, depth, idx int) {
	one := path[idx].one
	zero := path[idx].zero
	n := path[depth].weight

	for i := depth - 1; i >= 0; i-- {
		if one != 0 {
			tmp := path[i].weight
			path[i].weight = n * float64(depth+1) / (float64(i+1) * one)
			n = tmp - path[i].weight*zero*float64(depth-i)/float64(depth+1)
		} else {
			path[i].weight = path[i].weight * float64(depth+1) / (zero * float64(depth-i))
		}
	}

	for i := idx; i < depth; i++ {
		path[i].feature = path[i+1].feature
		path[i].zero = path[i+1].zero
		path[i].one = path[i+1].one
	}
}

// unwoundPathSum is the total permutation weight the path would carry with
// the element at idx removed, without mutating the path.
func unwoundPathSum(path []pathElement, depth, idx int) float64 {
	one := path[idx].one
	zero := path[idx].zero
	n := path[depth].weight
	total := 0.0

	if one != 0 {
		for i := depth - 1; i >= 0; i-- {
			tmp := n / (float64(i+1) * one)
			total += tmp
			n = path[i].weight - tmp*zero*float64(depth-i)
		}
	} else {
		for i := depth - 1; i >= 0; i-- {
			total += path[i].weight / (zero * float64(depth-i))
		}
	}

	return total * float64(depth+1)
}
