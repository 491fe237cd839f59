package walker

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func sampleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "health.txt", []byte("Policy No: H1"))
	writeFile(t, root, "plans/gold.md", []byte("# Gold plan"))
	writeFile(t, root, "plans/terms.html", []byte("<p>terms</p>"))
	writeFile(t, root, "scans/claim.pdf", []byte("%PDF-1.4\x00binary"))
	writeFile(t, root, "notes.docx", []byte("unsupported"))
	writeFile(t, root, "broken.txt", []byte("bad\x00bytes"))
	writeFile(t, root, ".git/config.txt", []byte("ignored"))
	writeFile(t, root, "draft.tmp.txt", []byte("draft"))
	return root
}

func relPaths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	return out
}

func TestWalk_DiscoversSupportedFormats(t *testing.T) {
	root := sampleTree(t)

	files, err := Walk(Config{RootDir: root})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	want := []string{"draft.tmp.txt", "health.txt", "plans/gold.md", "plans/terms.html", "scans/claim.pdf"}
	got := relPaths(files)
	if len(got) != len(want) {
		t.Fatalf("Walk() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWalk_FileInfoFields(t *testing.T) {
	root := sampleTree(t)

	files, err := Walk(Config{RootDir: root})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	formats := map[string]Format{
		"health.txt":       FormatText,
		"plans/gold.md":    FormatMarkdown,
		"plans/terms.html": FormatHTML,
		"scans/claim.pdf":  FormatPDF,
	}
	for _, f := range files {
		if !filepath.IsAbs(f.Path) {
			t.Errorf("%s: Path %q is not absolute", f.RelPath, f.Path)
		}
		if len(f.ContentHash) != 64 {
			t.Errorf("%s: ContentHash %q is not a SHA-256 digest", f.RelPath, f.ContentHash)
		}
		if f.Size <= 0 {
			t.Errorf("%s: Size = %d", f.RelPath, f.Size)
		}
		if want, ok := formats[f.RelPath]; ok && f.Format != want {
			t.Errorf("%s: Format = %q, want %q", f.RelPath, f.Format, want)
		}
	}
}

func TestWalk_IncludeExclude(t *testing.T) {
	root := sampleTree(t)

	files, err := Walk(Config{
		RootDir: root,
		Include: []string{"**/*.txt", "**/*.md"},
		Exclude: []string{"*.tmp.txt"},
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	got := relPaths(files)
	if len(got) != 2 || got[0] != "health.txt" || got[1] != "plans/gold.md" {
		t.Errorf("Walk() = %v, want [health.txt plans/gold.md]", got)
	}
}

func TestWalk_MaxFileSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.txt", []byte("ok"))
	writeFile(t, root, "big.txt", []byte("0123456789"))

	files, err := Walk(Config{RootDir: root, MaxFileSize: 5})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if got := relPaths(files); len(got) != 1 || got[0] != "small.txt" {
		t.Errorf("Walk() = %v, want [small.txt]", got)
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	if _, err := Walk(Config{RootDir: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestWalk_Deterministic(t *testing.T) {
	root := sampleTree(t)
	a, _ := Walk(Config{RootDir: root})
	b, _ := Walk(Config{RootDir: root})
	for i := range a {
		if a[i].RelPath != b[i].RelPath || a[i].ContentHash != b[i].ContentHash {
			t.Errorf("walk %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.PDF":      FormatPDF,
		"a.txt":      FormatText,
		"a.markdown": FormatMarkdown,
		"a.htm":      FormatHTML,
		"a.docx":     FormatUnknown,
		"README":     FormatUnknown,
	}
	for name, want := range tests {
		if got := DetectFormat(name); got != want {
			t.Errorf("DetectFormat(%q) = %q, want %q", name, got, want)
		}
	}
	if FormatPDF.IsText() || !FormatHTML.IsText() {
		t.Error("IsText misclassifies formats")
	}
}

func TestMatchesIncludeExclude(t *testing.T) {
	if !MatchesInclude("a/b.pdf", nil) {
		t.Error("empty include should match everything")
	}
	if MatchesExclude("a/b.pdf", nil) {
		t.Error("empty exclude should match nothing")
	}
	if !MatchesInclude("deep/dir/policy.pdf", []string{"**/*.pdf"}) {
		t.Error("**/*.pdf should match nested pdf")
	}
	if !MatchesExclude("deep/.DS_Store", []string{"**/.DS_Store"}) {
		t.Error("**/.DS_Store should match")
	}
	if !MatchesExclude("x/~$draft.txt", []string{"~$*"}) {
		t.Error("base-name pattern should match nested file")
	}
	if HashBytes([]byte("abc")) != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Error("HashBytes mismatch")
	}
}
