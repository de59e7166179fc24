package bargmann

// Simplify merges batch entries whose (A, b) agree within tol by summing
// their coefficients, keeping the first occurrence of each distinct pair.
// This is the one canonical merge strategy of the library: a forward scan
// against already-kept entries with an absolute tolerance.
func (t Triple) Simplify(tol float64) Triple {
	kept := make([]int, 0, len(t.a))
	c := append([]complex128{}, t.c...)

outer:
	for i := range t.a {
		for _, k := range kept {
			if t.a[i].EqualWithin(t.a[k], tol) && t.b[i].EqualWithin(t.b[k], tol) {
				c[k] += c[i]
				continue outer
			}
		}
		kept = append(kept, i)
	}

	out := Triple{be: t.be}
	for _, k := range kept {
		out.a = append(out.a, t.a[k])
		out.b = append(out.b, t.b[k])
		out.c = append(out.c, c[k])
	}
	return out
}
