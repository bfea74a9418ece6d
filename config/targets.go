package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Targets is the set of window titles and the module name the locator looks for.
// Every call to Default or Load builds a fresh value.
type Targets struct {
	WindowNames []string `toml:"window_names"`
	ModuleName  string   `toml:"module_name"`
}

func Default() Targets {
	return Targets{
		WindowNames: []string{WINDOW_UNREAL, WINDOW_UT, WINDOW_UT2004},
		ModuleName:  BASE_MODULE_NAME,
	}
}

// Load reads overrides from a TOML file. A missing file yields the defaults.
// Keys absent from the file keep their default value.
func Load(path string) (Targets, error) {
	t := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return Targets{}, errors.Wrapf(err, "read %s", path)
	}

	var file Targets
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return Targets{}, errors.Wrapf(err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Targets{}, errors.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	if md.IsDefined("window_names") {
		t.WindowNames = append([]string(nil), file.WindowNames...)
	}
	if md.IsDefined("module_name") {
		t.ModuleName = file.ModuleName
	}

	if err := t.Validate(); err != nil {
		return Targets{}, errors.Wrap(err, path)
	}
	return t, nil
}

func (t Targets) Validate() error {
	if len(t.WindowNames) == 0 {
		return errors.New("window_names must not be empty")
	}
	for i, name := range t.WindowNames {
		if strings.TrimSpace(name) == "" {
			return errors.Errorf("window_names[%d] is blank", i)
		}
	}
	if t.ModuleName == "" {
		return errors.New("module_name must not be empty")
	}
	return nil
}
