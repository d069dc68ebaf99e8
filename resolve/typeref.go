package resolve

import (
	"strings"

	"github.com/viant/rdsm/rdsmerr"
)

// AliasTable is the module-local import alias table built from a
// module's resolved `use` declarations: local name -> resolved target.
type AliasTable map[string]ResolvedImport

// BuildAliasTable collects one module's already-resolved use targets
// into its alias table, keyed by local name.
func BuildAliasTable(uses []ResolvedImport) AliasTable {
	table := AliasTable{}
	for _, ri := range uses {
		table[ri.LocalName] = ri
	}
	return table
}

// ResolveTypeName resolves a bare type name (already stripped of
// generic arguments and reference markers by the caller) to a concrete
// node id, trying in order: (a) the module-local alias table, (b)
// <currentModule>::<name>, (c) crate::<name>, (d) last-resort suffix
// match over sorted ids.
// Primitives and the curated stdlib containers are external: no edge.
// Returns ok=false when nothing matches. When the suffix match finds
// several candidates, the first in sorted order is returned and diag
// records all of them.
func ResolveTypeName(name, currentModulePath string, aliases AliasTable, idx *Index, diag *rdsmerr.Sink) (string, bool) {
	if IsPrimitive(name) || IsExternalContainer(name) {
		return "", false
	}
	if strings.Contains(name, "::") {
		if idx.Has(name) {
			return name, true
		}
		name = lastSegment(name)
	}

	if ri, ok := aliases[name]; ok {
		if ri.External {
			return "", false
		}
		return ri.TargetID, true
	}

	local := currentModulePath + "::" + name
	if idx.Has(local) {
		return local, true
	}

	crateLevel := "crate::" + name
	if idx.Has(crateLevel) {
		return crateLevel, true
	}

	matches := idx.SuffixMatches(name)
	if len(matches) == 0 {
		return "", false
	}
	if len(matches) > 1 && diag != nil {
		diag.Add(rdsmerr.Diagnostic{
			Kind:    rdsmerr.UnresolvedType,
			Message: "ambiguous suffix match for " + name + ": " + strings.Join(matches, ", "),
		})
	}
	return matches[0], true
}
