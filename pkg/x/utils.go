package x

// Without returns a copy of slice with every occurrence of item removed.
func Without[V comparable](slice []V, item V) []V {
	var out []V
	for _, v := range slice {
		if v != item {
			out = append(out, v)
		}
	}
	return out
}
