package depm

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/widsnoy/airyc/common"
	"github.com/widsnoy/airyc/report"
)

// tomlManifest is the on-disk shape of airyc-mod.toml, deserialized
// directly by go-toml.
type tomlManifest struct {
	Name        string   `toml:"name"`
	Output      string   `toml:"output"`
	Runtime     string   `toml:"runtime"`
	LinkObjects []string `toml:"link-objects"`
}

// Manifest is the resolved project configuration read from an optional
// airyc-mod.toml sitting next to the entry file. Every field is a default
// that the CLI's own flags may override.
type Manifest struct {
	Name        string
	OutputPath  string
	RuntimePath string
	LinkObjects []string
}

// LoadManifest looks for airyc-mod.toml in dir. Its absence is not an
// error: the manifest is entirely optional, and a missing file yields a
// zero-value Manifest so that the driver falls back to CLI defaults.
func LoadManifest(dir string) (*Manifest, bool) {
	path := filepath.Join(dir, common.ManifestFileName)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, true
		}
		report.ReportFatal("unable to open manifest at `%s`: %s", path, err.Error())
		return nil, false
	}
	defer f.Close()

	buf, err := os.ReadFile(path)
	if err != nil {
		report.ReportFatal("error reading manifest at `%s`: %s", path, err.Error())
		return nil, false
	}

	var raw tomlManifest
	if err := toml.Unmarshal(buf, &raw); err != nil {
		report.ReportFatal("error parsing manifest at `%s`: %s", path, err.Error())
		return nil, false
	}

	return &Manifest{
		Name:        raw.Name,
		OutputPath:  raw.Output,
		RuntimePath: raw.Runtime,
		LinkObjects: raw.LinkObjects,
	}, true
}
