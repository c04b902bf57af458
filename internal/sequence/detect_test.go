package sequence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectGroupsUnderscoreSuffixes(t *testing.T) {
	files := []string{
		"walk_01.png",
		"walk_02.png",
		"walk_03.png",
		"idle_1.png",
		"idle_2.png",
		"portrait.png",
	}

	seqs := Detect(files)
	require.Len(t, seqs, 2)

	assert.Equal(t, "idle", seqs[0].Base)
	assert.Equal(t, []string{"idle_1.png", "idle_2.png"}, seqs[0].Files)

	assert.Equal(t, "walk", seqs[1].Base)
	assert.Equal(t, []string{"walk_01.png", "walk_02.png", "walk_03.png"}, seqs[1].Files)
}

func TestDetectGroupsBareTrailingDigits(t *testing.T) {
	seqs := Detect([]string{"frame1.png", "frame2.png", "frame3.png"})
	require.Len(t, seqs, 1)
	assert.Equal(t, "frame", seqs[0].Base)
	assert.Len(t, seqs[0].Files, 3)
}

func TestDetectSingletonsAreNotSequences(t *testing.T) {
	seqs := Detect([]string{"hero_01.png", "villain_01.png", "background.png"})
	assert.Empty(t, seqs)
}

func TestDetectOrderingIsLexicographic(t *testing.T) {
	// Without zero padding, "10" sorts before "9". That ordering is kept
	// as-is rather than parsed numerically.
	seqs := Detect([]string{"frame9.png", "frame10.png"})
	require.Len(t, seqs, 1)
	assert.Equal(t, []string{"frame10.png", "frame9.png"}, seqs[0].Files)
}

func TestDetectFiltersNonImageFiles(t *testing.T) {
	seqs := Detect([]string{
		"clip_1.png",
		"clip_2.png",
		"clip_3.txt",
		"clip_4.webm",
	})
	require.Len(t, seqs, 1)
	assert.Equal(t, []string{"clip_1.png", "clip_2.png"}, seqs[0].Files)
}

func TestDetectExtensionsAreCaseInsensitive(t *testing.T) {
	seqs := Detect([]string{"run_1.PNG", "run_2.Png"})
	require.Len(t, seqs, 1)
	assert.Equal(t, "run", seqs[0].Base)
}

func TestDetectTrailingUnderscoreGroupsWithPrefix(t *testing.T) {
	// "abc_" has an empty suffix after the underscore, which counts as a
	// digit run; it groups with "abc_1".
	seqs := Detect([]string{"abc_.png", "abc_1.png"})
	require.Len(t, seqs, 1)
	assert.Equal(t, "abc", seqs[0].Base)
}

func TestDetectNonNumericSuffixDoesNotGroup(t *testing.T) {
	seqs := Detect([]string{"tile_left.png", "tile_right.png"})
	assert.Empty(t, seqs)
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		stem string
		want string
	}{
		{"walk_01", "walk"},
		{"walk_left_01", "walk_left"},
		{"frame7", "frame"},
		{"tile_left", "tile_left"},
		{"static", "static"},
		{"v2_frame_03", "v2_frame"},
		{"123", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, baseName(tt.stem), "stem %q", tt.stem)
	}
}

func TestCleanBase(t *testing.T) {
	// CleanBase strips only underscore-digit suffixes; bare trailing digits
	// survive so the output keeps the first member's full stem.
	assert.Equal(t, "walk", CleanBase("walk_01"))
	assert.Equal(t, "frame1", CleanBase("frame1"))
	assert.Equal(t, "tile_left", CleanBase("tile_left"))
}

func TestFindSpritePairs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "effect.dds")
	writeFile(t, dir, "effect.sprite")
	writeFile(t, dir, "plain.dds")
	writeFile(t, dir, "orphan.sprite")

	pairs, err := FindSpritePairs(dir)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, filepath.Join(dir, "effect.dds"), pairs[0].Texture)
	assert.Equal(t, filepath.Join(dir, "effect.sprite"), pairs[0].Descriptor)
}

func TestFindSpritePairsIgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeFile(t, sub, "deep.dds")
	writeFile(t, sub, "deep.sprite")

	pairs, err := FindSpritePairs(dir)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestScanImages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.png")
	writeFile(t, dir, "a.dds")
	writeFile(t, dir, "notes.txt")

	files, err := ScanImages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.dds"),
		filepath.Join(dir, "b.png"),
	}, files)
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}
