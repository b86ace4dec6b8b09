package form

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	spew "github.com/davecgh/go-spew/spew"
	"golang.org/x/xerrors"
)

func writeTestFile(t *testing.T, dir, name, content string) {
	if err := ioutil.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

var badConfigs = []struct {
	cfg string
	err error
}{
	{"[[field]]\nvalue = \"x\"\n", errNoFieldName},
	{"[[file]]\npath = \"x\"\n", errNoFieldName},
	{"[[file]]\nname = \"f\"\n", errPathAndDir},
	{"[[file]]\nname = \"f\"\npath = \"a\"\ndir = \"b\"\n", errPathAndDir},
	{"[[file]]\nname = \"f\"\npath = \"a\"\nglob = \"*\"\n", errGlobNoDir},
	{"[[file]]\nname = \"f\"\ndir = \"a\"\nfilename = \"b\"\n", errNameNoPath},
	{"[[field]]\nname = \"a\"\nvalu = \"typo\"\n", nil},
	{"[[file]]\nname = \"f\"\ndir = \"a\"\nglob = \"[\"\n", nil},
	{"boundary = \n", nil},
}

func TestParseConfigErrors(t *testing.T) {
	for i, c := range badConfigs {
		_, err := ParseConfig(c.cfg)
		if err == nil {
			t.Errorf("testcase %d: expected error", i)
			continue
		}
		if c.err != nil && !xerrors.Is(err, c.err) {
			t.Errorf("testcase %d: expected %v got %v", i, c.err, err)
		}
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(`
boundary = "TESTBOUNDARY"

[[field]]
name = "a"
value = "1"

[[file]]
name = "pics"
dir = "img"
glob = "*.{png,jpg}"
content_type = "auto"
`)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	t.Logf("config: %s", spew.Sdump(cfg))
	if cfg.Boundary != "TESTBOUNDARY" || len(cfg.Fields) != 1 || len(cfg.Files) != 1 {
		t.Fatalf("unexpected config")
	}
	if cfg.BaseDir != "." {
		t.Fatalf("unexpected BaseDir %q", cfg.BaseDir)
	}
	if cfg.Files[0].g == nil || !cfg.Files[0].g.Match("x.png") || cfg.Files[0].g.Match("x.gif") {
		t.Fatalf("glob not compiled properly")
	}
}

func TestGenerateExact(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "report.pdf", "%PDF-1.4")
	writeTestFile(t, dir, "form.toml", `
boundary = "TESTBOUNDARY"

[[field]]
name = "a"
value = "1"

[[field]]
name = "b"
value = "2"

[[file]]
name = "upload"
path = "report.pdf"
`)
	cfg, err := LoadConfig(filepath.Join(dir, "form.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	var b bytes.Buffer
	mw, err := NewWriter(&b, &cfg)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	st, err := Generate(mw, &cfg, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if st.Fields != 2 || st.Files != 1 || st.Bytes != 8 {
		t.Fatalf("unexpected stats %s", spew.Sdump(st))
	}
	exp := "--TESTBOUNDARY\r\n" +
		"Content-Disposition: form-data; name=\"a\"\r\n\r\n1" +
		"\r\n--TESTBOUNDARY\r\n" +
		"Content-Disposition: form-data; name=\"b\"\r\n\r\n2" +
		"\r\n--TESTBOUNDARY\r\n" +
		"Content-Disposition: form-data; name=\"upload\"; filename=\"report.pdf\"\r\n" +
		"Content-Type: application/octet-stream\r\n\r\n%PDF-1.4" +
		"\r\n--TESTBOUNDARY--\r\n"
	if b.String() != exp {
		t.Fatalf("expected %q got %q", exp, b.String())
	}
}

func TestResolveFilesGlob(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "img")
	if err := os.Mkdir(img, 0755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := os.Mkdir(filepath.Join(img, "sub.png"), 0755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	writeTestFile(t, img, "b.png", "b")
	writeTestFile(t, img, "a.jpg", "a")
	writeTestFile(t, img, "c.gif", "c")
	// decomposed e + combining acute
	writeTestFile(t, img, "cafe\u0301.png", "d")

	cfg, err := ParseConfig(`
[[file]]
name = "pics"
dir = "img"
glob = "*.{png,jpg}"
content_type = "auto"
`)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	cfg.BaseDir = dir

	ents, err := ResolveFiles(&cfg)
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}
	t.Logf("entries: %s", spew.Sdump(ents))
	names := make([]string, len(ents))
	for i := range ents {
		names[i] = ents[i].FileName
		if ents[i].Field != "pics" {
			t.Fatalf("unexpected field %q", ents[i].Field)
		}
	}
	exp := []string{"a.jpg", "b.png", "caf\u00e9.png"}
	if strings.Join(names, "|") != strings.Join(exp, "|") {
		t.Fatalf("expected %q got %q", exp, names)
	}
	if ents[1].ContentType != "image/png" {
		t.Fatalf("unexpected content type %q", ents[1].ContentType)
	}
}

func TestResolveFilesErrors(t *testing.T) {
	dir := t.TempDir()
	cfg, err := ParseConfig("[[file]]\nname = \"f\"\npath = \"missing\"\n")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	cfg.BaseDir = dir
	if _, err = ResolveFiles(&cfg); !xerrors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error got %v", err)
	}

	cfg.Files[0].Path = "."
	if _, err = ResolveFiles(&cfg); err == nil {
		t.Fatalf("expected error for directory path")
	}
}

func TestNewWriterBadBoundary(t *testing.T) {
	cfg := DefaultConfig
	cfg.Boundary = "bad\"boundary"
	if _, err := NewWriter(ioutil.Discard, &cfg); err == nil {
		t.Fatalf("expected error for invalid boundary")
	}
	cfg.Boundary = ""
	mw, err := NewWriter(ioutil.Discard, &cfg)
	if err != nil || mw.Boundary() == "" {
		t.Fatalf("NewWriter with random boundary failed: %v", err)
	}
}
