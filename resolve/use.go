package resolve

import (
	"strings"

	"github.com/viant/rdsm/ir"
)

var externalRoots = map[string]bool{"std": true, "core": true, "alloc": true}

// externalContainers is the curated set of standard-library container
// names treated as external ("no edge") even when they appear as a bare
// type name rather than via an std/core/alloc-rooted path.
var externalContainers = map[string]bool{
	"String": true, "Vec": true, "Option": true, "Result": true, "Box": true,
	"Rc": true, "Arc": true, "RefCell": true, "Cell": true, "Mutex": true,
	"RwLock": true, "HashMap": true, "HashSet": true, "BTreeMap": true,
	"BTreeSet": true, "VecDeque": true, "LinkedList": true, "BinaryHeap": true,
	"Cow": true, "PhantomData": true,
}

// primitives are the built-in scalar and textual types, treated as
// external with no outgoing edge.
var primitives = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true, "isize": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true, "usize": true,
	"f32": true, "f64": true, "bool": true, "char": true, "str": true,
}

// IsExternalContainer reports whether name is a curated stdlib container
// treated as external with no outgoing edge.
func IsExternalContainer(name string) bool {
	return externalContainers[name]
}

// IsPrimitive reports whether name is a built-in primitive type.
func IsPrimitive(name string) bool {
	return primitives[name]
}

// ResolvedImport is one concrete, resolved `use` target.
type ResolvedImport struct {
	LocalName string
	TargetID  string
	Kind      Kind
	External  bool
}

// baseSegments resolves an import's leading segment: crate keeps the
// path verbatim, self/super anchor at the current or parent module,
// std/core/alloc mark the import external, and anything else is assumed
// intra-crate under crate:: (the workspace linker revisits those).
func baseSegments(segments []string, currentModulePath string) (base []string, external bool) {
	if len(segments) == 0 {
		return nil, false
	}
	first := segments[0]
	rest := segments[1:]
	switch {
	case first == "crate":
		return append([]string{"crate"}, rest...), false
	case first == "self":
		return append(splitPath(currentModulePath), rest...), false
	case first == "super":
		return append(splitPath(parentPath(currentModulePath)), rest...), false
	case externalRoots[first]:
		return append([]string{first}, rest...), true
	default:
		return append([]string{"crate"}, segments...), false
	}
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, "::")
}

func parentPath(path string) string {
	parts := splitPath(path)
	if len(parts) <= 1 {
		return path
	}
	return strings.Join(parts[:len(parts)-1], "::")
}

// ResolveUse resolves one `use` declaration to zero or more concrete
// targets, covering the glob, explicit-items, and single-path forms.
func ResolveUse(u *ir.Use, currentModulePath string, idx *Index) []ResolvedImport {
	base, external := baseSegments(u.Segments, currentModulePath)
	if external {
		return nil
	}
	baseID := strings.Join(base, "::")

	switch {
	case u.Glob:
		var out []ResolvedImport
		for _, id := range idx.EnumerateUnder(baseID) {
			kind, _ := idx.KindOf(id)
			out = append(out, ResolvedImport{LocalName: lastSegment(id), TargetID: id, Kind: kind})
		}
		return out

	case len(u.Items) > 0:
		var out []ResolvedImport
		for _, item := range u.Items {
			var targetID, localName string
			if item.Name == "self" {
				targetID = baseID
				localName = lastSegment(baseID)
			} else {
				targetID = baseID + "::" + item.Name
				localName = item.Name
			}
			if item.Alias != "" {
				localName = item.Alias
			}
			kind, ok := idx.KindOf(targetID)
			if !ok {
				continue
			}
			out = append(out, ResolvedImport{LocalName: localName, TargetID: targetID, Kind: kind})
		}
		return out

	default:
		kind, ok := idx.KindOf(baseID)
		if !ok {
			return nil
		}
		localName := lastSegment(baseID)
		return []ResolvedImport{{LocalName: localName, TargetID: baseID, Kind: kind}}
	}
}

func lastSegment(path string) string {
	parts := splitPath(path)
	if len(parts) == 0 {
		return path
	}
	return parts[len(parts)-1]
}
