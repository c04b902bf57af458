// Package sequence groups loose image files into ordered animation sequences
// by filename heuristics, and discovers sprite-sheet texture/descriptor pairs.
package sequence

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Image extensions eligible for sequence detection (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".png":  true,
	".dds":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tga":  true,
}

// descriptorExt is the companion file extension that marks a texture as a
// sprite sheet.
const descriptorExt = ".sprite"

// Sequence is an ordered group of at least two image files sharing a base
// name, in playback order.
type Sequence struct {
	Base  string   // Common base name (numeric suffix stripped).
	Files []string // Lexicographically sorted member paths.
}

// SpritePair couples a texture with its same-stem descriptor file.
type SpritePair struct {
	Texture    string
	Descriptor string
}

// Detect groups files into sequences. Files are matched against the image
// extension allow-list (case-insensitive), sorted, grouped by base name, and
// groups of two or more members become sequences. Sequences are emitted in
// base-name order for determinism; callers must not rely on that order.
//
// Ordering within a group is lexicographic. Zero-padding is not enforced:
// "frame9" sorts after "frame10". That is accepted source behavior.
func Detect(files []string) []Sequence {
	candidates := make([]string, 0, len(files))
	for _, f := range files {
		if imageExtensions[strings.ToLower(filepath.Ext(f))] {
			candidates = append(candidates, f)
		}
	}
	sort.Strings(candidates)

	groups := make(map[string][]string)
	for _, f := range candidates {
		base := baseName(stem(f))
		groups[base] = append(groups[base], f)
	}

	bases := make([]string, 0, len(groups))
	for base, members := range groups {
		if len(members) > 1 {
			bases = append(bases, base)
		}
	}
	sort.Strings(bases)

	seqs := make([]Sequence, 0, len(bases))
	for _, base := range bases {
		members := groups[base]
		sort.Strings(members)
		seqs = append(seqs, Sequence{Base: base, Files: members})
	}
	return seqs
}

// baseName derives the grouping key from a file stem. A "_<digits>" suffix is
// stripped at the last underscore; otherwise a bare trailing digit run is
// stripped. A stem with neither is its own base.
func baseName(s string) string {
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		if isDigits(s[i+1:]) {
			return s[:i]
		}
		return s
	}

	end := len(s)
	for end > 0 && s[end-1] >= '0' && s[end-1] <= '9' {
		end--
	}
	return s[:end]
}

// CleanBase strips a "_<digits>" suffix from a stem for output naming. Unlike
// grouping, bare trailing digits are kept: a sequence frame1/frame2 yields an
// output named after the first member's full stem.
func CleanBase(s string) string {
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		if isDigits(s[i+1:]) {
			return s[:i]
		}
	}
	return s
}

// FindSpritePairs scans dir (flat, no recursion) for textures that have a
// same-stem descriptor sibling. Pairs are returned in texture path order.
// When any pairs exist, sprite-sheet mode takes precedence over generic
// sequence detection.
func FindSpritePairs(dir string) ([]SpritePair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var pairs []SpritePair
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".dds") {
			continue
		}
		texture := filepath.Join(dir, e.Name())
		descriptor := strings.TrimSuffix(texture, filepath.Ext(texture)) + descriptorExt
		if _, err := os.Stat(descriptor); err == nil {
			pairs = append(pairs, SpritePair{Texture: texture, Descriptor: descriptor})
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Texture < pairs[j].Texture })
	return pairs, nil
}

// ScanImages returns the image files directly inside dir (flat scan),
// filtered by the extension allow-list.
func ScanImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Stem exposes the file stem helper for output naming in the pipeline.
func Stem(path string) string { return stem(path) }
