package recipes

import (
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/registry"
)

// NewRegistry builds the recipe registry from the built-in table plus
// any user-defined recipes from the given YAML file (empty path means
// the default location). User recipes may not shadow built-ins.
func NewRegistry(customPath string) (registry.Registry[*Recipe], error) {
	if customPath == "" {
		customPath = paths.RecipesFile()
	}

	reg := registry.New[*Recipe]()
	for _, r := range Builtins() {
		if err := reg.Register(r.Name, r); err != nil {
			return nil, err
		}
	}

	custom, err := LoadCustom(customPath)
	if err != nil {
		return nil, err
	}
	for _, r := range custom {
		if err := reg.Register(r.Name, r); err != nil {
			return nil, errors.Wrapf(err, errors.ErrRecipeLoad,
				"user recipe %q conflicts with an existing recipe", r.Name)
		}
	}

	return reg, nil
}

// Lookup resolves a recipe by name with a recipe-specific error
func Lookup(reg registry.Registry[*Recipe], name string) (*Recipe, error) {
	recipe, err := reg.Get(name)
	if err != nil {
		return nil, errors.Newf(errors.ErrRecipeNotFound,
			"unknown recipe %q (see 'rigup list')", name)
	}
	return recipe, nil
}

// Complete returns the sorted recipe names starting with prefix, for
// shell tab-completion
func Complete(reg registry.Registry[*Recipe], prefix string) []string {
	var out []string
	for _, name := range reg.List() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}
