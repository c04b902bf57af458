package naming

import (
	"path/filepath"
	"strings"
)

// ResolveOutput maps an input file path to its output path:
//
//	<outputRoot>/<relative-to-inputRoot, minus stripSegments leading components>
//
// with the extension replaced by format. Inputs that are not descendants of
// inputRoot keep their own components (treated as relative), so the result
// never escapes outputRoot. Stripping as many segments as exist (or more)
// clamps to the final filename component, so the file lands directly under
// outputRoot. The function is total: it never fails.
func ResolveOutput(inputPath, inputRoot, outputRoot string, stripSegments int, format string) string {
	rel, err := filepath.Rel(inputRoot, inputPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = inputPath
	}

	parts := splitComponents(rel)
	if stripSegments > 0 && len(parts) > 0 {
		if stripSegments >= len(parts) {
			// Stripping everything would lose the filename; keep it.
			parts = parts[len(parts)-1:]
		} else {
			parts = parts[stripSegments:]
		}
	}

	out := filepath.Join(append([]string{outputRoot}, parts...)...)
	return replaceExt(out, format)
}

// splitComponents breaks a path into its normal components, dropping empty,
// "." and root markers so absolute fallback paths become relative.
func splitComponents(path string) []string {
	raw := strings.Split(filepath.ToSlash(path), "/")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p == "" || p == "." {
			continue
		}
		parts = append(parts, p)
	}
	return parts
}

// replaceExt swaps the final extension for format, appending it when the
// path has no extension.
func replaceExt(path, format string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + format
}
