package flexlist

// Item is one element of the authoritative list: the live registry's name
// and label for a column, app, or model. Order is significant — it is the
// fallback position for items the user has not arranged yet.
type Item struct {
	Name        string
	Description string
}

// Reconcile merges a user's stored entries with the authoritative list.
//
// Stored entries keep their relative order and visibility; their
// descriptions are overwritten from the authoritative list, since stored
// labels go stale when fields are renamed. Stored entries whose name is no
// longer in the authoritative list are dropped. Authoritative items the
// user has never arranged are appended at the end in authoritative order,
// visible by default. A name repeated in the stored list contributes only
// its first occurrence.
//
// The result contains every authoritative name exactly once and nothing
// else, for any stored input.
func Reconcile(authoritative []Item, stored []Entry) []Entry {
	descriptions := make(map[string]string, len(authoritative))
	for _, item := range authoritative {
		descriptions[item.Name] = item.Description
	}

	result := make([]Entry, 0, len(authoritative))
	seen := make(map[string]struct{}, len(authoritative))

	for _, entry := range stored {
		description, ok := descriptions[entry.Name]
		if !ok {
			continue
		}
		if _, dup := seen[entry.Name]; dup {
			continue
		}
		seen[entry.Name] = struct{}{}
		result = append(result, Entry{
			Name:        entry.Name,
			Description: description,
			Visible:     entry.Visible,
		})
	}

	for _, item := range authoritative {
		if _, ok := seen[item.Name]; ok {
			continue
		}
		result = append(result, Entry{
			Name:        item.Name,
			Description: item.Description,
			Visible:     true,
		})
	}

	return result
}
