package registry

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/policy-extract/internal/model"
)

// LoadFieldsFromFile reads a YAML array of model.FieldSpec from the given
// path and returns an indexed FieldRegistry. Used to override the production
// field set for bespoke document layouts.
func LoadFieldsFromFile(path string) (*model.FieldRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "registry: read fields fixture")
	}

	var fields []model.FieldSpec
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, eris.Wrap(err, "registry: unmarshal fields fixture")
	}

	return model.NewFieldRegistry(fields), nil
}

// LoadBoundsFromFile reads a YAML map of field key to monetary bounds,
// used to override the default per-field amount ranges.
func LoadBoundsFromFile(path string) (map[string]model.MonetaryBounds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "registry: read bounds fixture")
	}

	var bounds map[string]model.MonetaryBounds
	if err := yaml.Unmarshal(data, &bounds); err != nil {
		return nil, eris.Wrap(err, "registry: unmarshal bounds fixture")
	}

	return bounds, nil
}
