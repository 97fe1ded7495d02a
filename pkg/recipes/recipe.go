// Package recipes holds the catalogue of named setup routines. Each
// recipe is a statically declared entry with its metadata (name,
// summary, parameters, markdown doc) and a run function built on the
// command runner. Nothing here is discovered by reflection: the
// command table is the single source of truth for dispatch, listing
// and shell completion.
package recipes

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/runner"
)

// Param describes one recipe parameter for help and signature listings
type Param struct {
	Name     string
	Required bool
	Desc     string
}

// Recipe is one named setup routine
type Recipe struct {
	Name    string
	Summary string
	Doc     string // markdown, rendered by `rigup info`
	Params  []Param
	Run     func(ctx *Context, args []string) error
}

// Signature renders the recipe's call signature, e.g. "swapfile <gigabytes>"
func (r *Recipe) Signature() string {
	parts := []string{r.Name}
	for _, p := range r.Params {
		if p.Required {
			parts = append(parts, "<"+p.Name+">")
		} else {
			parts = append(parts, "["+p.Name+"]")
		}
	}
	return strings.Join(parts, " ")
}

// CheckArgs validates the argument count against the declared parameters
func (r *Recipe) CheckArgs(args []string) error {
	required := 0
	for _, p := range r.Params {
		if p.Required {
			required++
		}
	}
	if len(args) < required {
		return errors.Newf(errors.ErrRecipeArgs,
			"recipe %q requires %d argument(s), got %d (usage: %s)",
			r.Name, required, len(args), r.Signature())
	}
	if len(args) > len(r.Params) {
		return errors.Newf(errors.ErrRecipeArgs,
			"recipe %q takes at most %d argument(s), got %d (usage: %s)",
			r.Name, len(r.Params), len(args), r.Signature())
	}
	return nil
}

// Context carries everything a recipe needs to do its work
type Context struct {
	Runner *runner.Runner
	Config *config.Config
	Logger zerolog.Logger
	Opts   *runner.Options
}

// NewContext creates a recipe execution context
func NewContext(r *runner.Runner, cfg *config.Config) *Context {
	return &Context{
		Runner: r,
		Config: cfg,
		Logger: logging.GetLogger("recipes"),
	}
}

// Run executes directives through the context's runner
func (c *Context) Run(directives []runner.Directive, dep *runner.Dependency) error {
	return c.Runner.Run(directives, dep, c.Opts)
}

// exists reports whether the path exists, with ~ expansion applied by
// the callers beforehand
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// guardNotRoot rejects recipes that must run as the regular user
func guardNotRoot(name string) error {
	if os.Geteuid() == 0 {
		return errors.Newf(errors.ErrInvalidInput, "recipe %q must not run as root", name)
	}
	return nil
}

// parseBranch parses an odoo-style branch string ("12.0") as a float
func parseBranch(branch string) (float64, error) {
	var v float64
	if _, err := fmt.Sscanf(branch, "%f", &v); err != nil {
		return 0, errors.Wrapf(err, errors.ErrRecipeArgs, "invalid branch: %s", branch)
	}
	return v, nil
}
