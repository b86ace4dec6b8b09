package form

import (
	"io"
	"io/ioutil"
	"mime"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/xerrors"

	"mpform/lib/logx"
	"mpform/lib/mail/multipart"
)

const octetStream = "application/octet-stream"

// FileEntry is single resolved file part.
type FileEntry struct {
	Field       string
	Path        string
	FileName    string
	ContentType string // empty means CreateFormFile default
}

func (cfg *Config) abs(p string) string {
	if filepath.IsAbs(p) || cfg.BaseDir == "" {
		return p
	}
	return filepath.Join(cfg.BaseDir, p)
}

func fileContentType(fc *FileConfig, fname string) string {
	if fc.ContentType != AutoContentType {
		return fc.ContentType
	}
	if ct := mime.TypeByExtension(filepath.Ext(fname)); ct != "" {
		return ct
	}
	return octetStream
}

// ResolveFiles expands file entries of cfg, in config order.
// Directory entries are expanded to regular files matching glob,
// sorted by name.
func ResolveFiles(cfg *Config) (ents []FileEntry, err error) {
	for i := range cfg.Files {
		fc := &cfg.Files[i]
		if fc.Path != "" {
			p := cfg.abs(fc.Path)
			st, e := os.Stat(p)
			if e != nil {
				return nil, xerrors.Errorf("file %q: %w", fc.Name, e)
			}
			if st.IsDir() {
				return nil, xerrors.Errorf(
					"file %q: path %q is a directory", fc.Name, p)
			}
			fn := fc.FileName
			if fn == "" {
				fn = st.Name()
			}
			fn = norm.NFC.String(fn)
			ents = append(ents, FileEntry{
				Field:       fc.Name,
				Path:        p,
				FileName:    fn,
				ContentType: fileContentType(fc, fn),
			})
			continue
		}

		d := cfg.abs(fc.Dir)
		fis, e := ioutil.ReadDir(d)
		if e != nil {
			return nil, xerrors.Errorf("file %q: %w", fc.Name, e)
		}
		for _, fi := range fis {
			if !fi.Mode().IsRegular() {
				continue
			}
			fn := norm.NFC.String(fi.Name())
			if fc.g != nil && !fc.g.Match(fn) {
				continue
			}
			ents = append(ents, FileEntry{
				Field:       fc.Name,
				Path:        filepath.Join(d, fi.Name()),
				FileName:    fn,
				ContentType: fileContentType(fc, fn),
			})
		}
	}
	return
}

// Stats describes generated message.
type Stats struct {
	Fields int
	Files  int
	Bytes  int64 // file body bytes
}

// Generate writes fields then files of cfg into mw and closes mw.
func Generate(mw *multipart.Writer, cfg *Config, lg logx.Logger) (st Stats, err error) {
	if lg == nil {
		lg = logx.NopLogger{}
	}

	ents, err := ResolveFiles(cfg)
	if err != nil {
		return
	}

	for _, f := range cfg.Fields {
		if err = mw.WriteField(f.Name, f.Value); err != nil {
			return st, xerrors.Errorf("field %q: %w", f.Name, err)
		}
		st.Fields++
		lg.LogPrintf(logx.DEBUG, "wrote field %q (%d bytes)", f.Name, len(f.Value))
	}

	for i := range ents {
		var n int64
		n, err = writeFile(mw, &ents[i])
		if err != nil {
			return st, xerrors.Errorf("file %q %q: %w",
				ents[i].Field, ents[i].Path, err)
		}
		st.Files++
		st.Bytes += n
		lg.LogPrintf(logx.DEBUG, "wrote file %q as %q (%d bytes)",
			ents[i].Path, ents[i].FileName, n)
	}

	if err = mw.Close(); err != nil {
		return
	}
	lg.LogPrintf(logx.INFO, "generated %d fields, %d files (%d file bytes)",
		st.Fields, st.Files, st.Bytes)
	return
}

func writeFile(mw *multipart.Writer, fe *FileEntry) (n int64, err error) {
	f, err := os.Open(fe.Path)
	if err != nil {
		return
	}
	defer f.Close()

	var p *multipart.Part
	if fe.ContentType == "" {
		p, err = mw.CreateFormFile(fe.Field, fe.FileName)
	} else {
		p, err = mw.CreateFormFileType(fe.Field, fe.FileName, fe.ContentType)
	}
	if err != nil {
		return
	}
	return io.Copy(p, f)
}

// NewWriter makes multipart writer honoring cfg.Boundary.
func NewWriter(w io.Writer, cfg *Config) (*multipart.Writer, error) {
	if cfg.Boundary != "" {
		mw, err := multipart.NewWithBoundary(w, cfg.Boundary)
		if err != nil {
			return nil, xerrors.Errorf("boundary %q: %w", cfg.Boundary, err)
		}
		return mw, nil
	}
	return multipart.New(w), nil
}
