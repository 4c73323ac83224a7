package adminsite

import "strings"

// resolveColumn turns a declared column ref into its (name, description)
// pair. The description chain mirrors what admins expect from the console:
// an explicit label on a computed column, then the model field's label,
// then the field name title-cased. The "__str__" header resolves to the
// model's verbose name.
func resolveColumn(ref ColumnRef, spec ModelSpec) Column {
	switch r := ref.(type) {
	case Computed:
		description := titleize(r.Name)
		if strings.TrimSpace(r.Label) != "" {
			description = title(r.Label)
		}
		return Column{Name: r.Name, Description: description}
	case Named:
		name := string(r)
		return Column{Name: name, Description: describeField(name, spec)}
	default:
		return Column{}
	}
}

func describeField(name string, spec ModelSpec) string {
	if name == "__str__" && strings.TrimSpace(spec.Verbose) != "" {
		return title(spec.Verbose)
	}
	for _, field := range spec.Fields {
		if field.Name != name {
			continue
		}
		if strings.TrimSpace(field.Label) != "" {
			return title(field.Label)
		}
		break
	}
	return titleize(name)
}

// titleize turns a field name like "created_at" into "Created At".
func titleize(name string) string {
	return title(strings.ReplaceAll(name, "_", " "))
}

// title uppercases the first letter of each word and lowercases the rest.
func title(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, word := range words {
		lower := strings.ToLower(word)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}
