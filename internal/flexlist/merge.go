package flexlist

import "reflect"

// DeepUpdate merges patch into dst in place. Keys whose value is an object
// on both sides recurse; every other key is replaced outright, lists
// included — lists are whole-replaced, never element-merged. Updating one
// model's column list therefore never disturbs sibling models or apps.
//
// Documents decoded from JSON are acyclic, but patches are caller-built
// maps, so a visited-identity set guards against self-referential input:
// a map seen twice is skipped instead of recursed into forever.
func DeepUpdate(dst, patch map[string]any) {
	deepUpdate(dst, patch, map[uintptr]struct{}{})
}

func deepUpdate(dst, patch map[string]any, seen map[uintptr]struct{}) {
	id := reflect.ValueOf(dst).Pointer()
	if _, ok := seen[id]; ok {
		return
	}
	seen[id] = struct{}{}

	for key, value := range patch {
		patchMap, patchIsMap := value.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if patchIsMap && dstIsMap {
			deepUpdate(dstMap, patchMap, seen)
			continue
		}
		dst[key] = value
	}
}
