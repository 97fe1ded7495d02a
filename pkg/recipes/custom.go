package recipes

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/runner"
)

// customFile is the schema of the user-defined recipes file
type customFile struct {
	Recipes []customRecipe `yaml:"recipes"`
}

// customRecipe is one user-defined recipe: plain directives with an
// optional directive-list dependency action
type customRecipe struct {
	Name       string   `yaml:"name"`
	Summary    string   `yaml:"summary"`
	Doc        string   `yaml:"doc"`
	Directives []string `yaml:"directives"`
	Dependency []string `yaml:"dependency"`
}

// LoadCustom reads user-defined recipes from a YAML file. A missing
// file is not an error: it simply contributes no recipes.
func LoadCustom(path string) ([]*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read recipes file %s", path)
	}

	var parsed customFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRecipeLoad, "cannot parse recipes file %s", path)
	}

	out := make([]*Recipe, 0, len(parsed.Recipes))
	for _, cr := range parsed.Recipes {
		if cr.Name == "" {
			return nil, errors.Newf(errors.ErrRecipeLoad, "recipe without a name in %s", path)
		}
		if len(cr.Directives) == 0 {
			return nil, errors.Newf(errors.ErrRecipeLoad, "recipe %q has no directives", cr.Name)
		}
		out = append(out, cr.toRecipe())
	}
	return out, nil
}

func (cr customRecipe) toRecipe() *Recipe {
	directives := toDirectives(cr.Directives)

	var dep *runner.Dependency
	if len(cr.Dependency) > 0 {
		dep = runner.Directives(toDirectives(cr.Dependency)...)
	}

	summary := cr.Summary
	if summary == "" {
		summary = "User-defined recipe"
	}

	return &Recipe{
		Name:    cr.Name,
		Summary: summary,
		Doc:     cr.Doc,
		Run: func(ctx *Context, args []string) error {
			return ctx.Run(directives, dep)
		},
	}
}

func toDirectives(in []string) []runner.Directive {
	out := make([]runner.Directive, len(in))
	for i, s := range in {
		out[i] = runner.Directive(s)
	}
	return out
}
