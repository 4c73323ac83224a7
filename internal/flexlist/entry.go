package flexlist

// Entry is one user-adjustable item in a layout list: a display column, an
// app, or a model. Name is the stable identifier matched against the live
// admin registry; Description is cosmetic and gets overwritten from the
// registry whenever it is available.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Visible     bool   `json:"visible"`
}

// entryFromMap builds an Entry from a decoded JSON object. The object must
// carry exactly the three expected keys with the expected types; anything
// else is rejected so stale or hand-edited documents degrade to "absent"
// instead of breaking a page render.
func entryFromMap(m map[string]any) (Entry, bool) {
	if len(m) != 3 {
		return Entry{}, false
	}
	name, ok := m["name"].(string)
	if !ok {
		return Entry{}, false
	}
	description, ok := m["description"].(string)
	if !ok {
		return Entry{}, false
	}
	visible, ok := m["visible"].(bool)
	if !ok {
		return Entry{}, false
	}
	return Entry{Name: name, Description: description, Visible: visible}, true
}

// EntriesFromValue coerces an arbitrary decoded JSON value into a list of
// entries. Non-list values yield an empty list, malformed elements are
// dropped silently.
func EntriesFromValue(v any) []Entry {
	list := listFromValue(v)
	result := make([]Entry, 0, len(list))
	for _, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		entry, ok := entryFromMap(m)
		if !ok {
			continue
		}
		result = append(result, entry)
	}
	return result
}

// EntriesToValue serializes entries into the plain map form stored inside
// the layout document.
func EntriesToValue(entries []Entry) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any{
			"name":        e.Name,
			"description": e.Description,
			"visible":     e.Visible,
		})
	}
	return out
}

func mapFromValue(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func listFromValue(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return []any{}
}
