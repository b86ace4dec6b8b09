package form

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
	"golang.org/x/xerrors"
)

// AutoContentType makes file part Content-Type guessed from file extension.
const AutoContentType = "auto"

type FieldConfig struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

type FileConfig struct {
	Name string `toml:"name"`
	// either Path, or Dir with optional Glob
	Path string `toml:"path"`
	Dir  string `toml:"dir"`
	Glob string `toml:"glob"`
	// overrides file name sent in Content-Disposition, only with Path
	FileName    string `toml:"filename"`
	ContentType string `toml:"content_type"`

	g glob.Glob
}

type Config struct {
	Boundary string        `toml:"boundary"`
	Fields   []FieldConfig `toml:"field"`
	Files    []FileConfig  `toml:"file"`

	// relative paths are resolved against this
	BaseDir string `toml:"-"`
}

var DefaultConfig = Config{
	BaseDir: ".",
}

var (
	errNoFieldName = errors.New("missing field name")
	errPathAndDir  = errors.New("exactly one of path and dir must be set")
	errGlobNoDir   = errors.New("glob requires dir")
	errNameNoPath  = errors.New("filename requires path")
)

// ParseConfig decodes TOML form description.
func ParseConfig(s string) (cfg Config, err error) {
	cfg = DefaultConfig
	md, err := toml.Decode(s, &cfg)
	if err != nil {
		return Config{}, xerrors.Errorf("toml decode: %w", err)
	}
	if err = checkUndecoded(md); err != nil {
		return Config{}, err
	}
	if err = cfg.prepare(); err != nil {
		return Config{}, err
	}
	return
}

// LoadConfig reads form description from file.
// Relative paths inside are resolved against file's directory.
func LoadConfig(fname string) (cfg Config, err error) {
	cfg = DefaultConfig
	md, err := toml.DecodeFile(fname, &cfg)
	if err != nil {
		return Config{}, xerrors.Errorf("loading %q: %w", fname, err)
	}
	if err = checkUndecoded(md); err != nil {
		return Config{}, xerrors.Errorf("loading %q: %w", fname, err)
	}
	cfg.BaseDir = filepath.Dir(fname)
	if err = cfg.prepare(); err != nil {
		return Config{}, xerrors.Errorf("loading %q: %w", fname, err)
	}
	return
}

func checkUndecoded(md toml.MetaData) error {
	if u := md.Undecoded(); len(u) != 0 {
		ks := make([]string, len(u))
		for i := range u {
			ks[i] = u[i].String()
		}
		return xerrors.Errorf("unknown keys: %s", strings.Join(ks, ", "))
	}
	return nil
}

func (cfg *Config) prepare() error {
	for i := range cfg.Fields {
		if cfg.Fields[i].Name == "" {
			return xerrors.Errorf("field[%d]: %w", i, errNoFieldName)
		}
	}
	for i := range cfg.Files {
		fc := &cfg.Files[i]
		if fc.Name == "" {
			return xerrors.Errorf("file[%d]: %w", i, errNoFieldName)
		}
		if (fc.Path == "") == (fc.Dir == "") {
			return xerrors.Errorf("file[%d] %q: %w", i, fc.Name, errPathAndDir)
		}
		if fc.Glob != "" {
			if fc.Dir == "" {
				return xerrors.Errorf("file[%d] %q: %w", i, fc.Name, errGlobNoDir)
			}
			g, err := glob.Compile(fc.Glob)
			if err != nil {
				return xerrors.Errorf(
					"file[%d] %q: bad glob %q: %w", i, fc.Name, fc.Glob, err)
			}
			fc.g = g
		}
		if fc.FileName != "" && fc.Path == "" {
			return xerrors.Errorf("file[%d] %q: %w", i, fc.Name, errNameNoPath)
		}
	}
	return nil
}
