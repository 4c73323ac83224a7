package flexlist

// EntriesAtPath walks path through the layout document and decodes the list
// of entries at the terminal key. Every intermediate segment is expected to
// be an object and every terminal value a list; any shape mismatch is
// treated as absent rather than an error, so a corrupted document reads as
// empty at the point of divergence. The document itself is never mutated.
func EntriesAtPath(doc map[string]any, path []string) []Entry {
	if len(path) == 0 {
		return []Entry{}
	}
	current := doc
	for _, key := range path[:len(path)-1] {
		current = mapFromValue(current[key])
	}
	return EntriesFromValue(current[path[len(path)-1]])
}

// UpdatePayload builds the nested patch that stores entries at path: each
// non-terminal segment becomes a single-key object and the terminal segment
// holds the serialized list. The result is the exact shape DeepUpdate
// consumes, so applying it touches nothing outside path.
func UpdatePayload(entries []Entry, path []string) map[string]any {
	payload := map[string]any{}
	if len(path) == 0 {
		return payload
	}
	current := payload
	for _, key := range path[:len(path)-1] {
		next := map[string]any{}
		current[key] = next
		current = next
	}
	current[path[len(path)-1]] = EntriesToValue(entries)
	return payload
}
