package loader

import "strings"

// pascalCase converts a single snake_case or kebab-case path segment into
// PascalCase, e.g. "linear_algebra" -> "LinearAlgebra".
func pascalCase(segment string) string {
	parts := strings.FieldsFunc(segment, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	return sb.String()
}

// ModuleNameForPath maps a project-relative .snow file path to its module
// name: one PascalCase segment per path component, joined with '.'. The
// root "main.snow" is special-cased to "Main" — the general rule already
// produces that name, but the case is spelled out because it is the one
// path every project has and the mapping must never drift.
func ModuleNameForPath(relPath string) string {
	relPath = strings.TrimSuffix(relPath, ".snow")
	relPath = strings.ReplaceAll(relPath, "\\", "/")
	if relPath == "main" {
		return "Main"
	}
	segments := strings.Split(relPath, "/")
	named := make([]string, 0, len(segments))
	for _, seg := range segments {
		named = append(named, pascalCase(seg))
	}
	return strings.Join(named, ".")
}
