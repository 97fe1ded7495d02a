// Package runner executes ordered lists of shell directives with
// dependency-triggered retry. It is the execution primitive every
// recipe is built on: directives run strictly in sequence, stream
// their output to the invoking terminal, and fail the batch on the
// first nonzero exit unless a dependency action remediates it.
package runner

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/rs/zerolog"
)

// chdirPrefix is the reserved prefix marking a change-directory directive.
const chdirPrefix = "cd "

// DefaultShell interprets all non-chdir directives.
const DefaultShell = "/bin/sh"

// Directive is a single unit of work: a shell command string, or a
// change-directory special form recognized by the "cd " prefix.
type Directive string

// IsChdir reports whether the directive is the change-directory special form
func (d Directive) IsChdir() bool {
	return strings.HasPrefix(string(d), chdirPrefix)
}

// ChdirTarget returns the directory a chdir directive points at,
// with ~ and environment variables expanded
func (d Directive) ChdirTarget() string {
	return paths.ExpandPath(strings.TrimSpace(strings.TrimPrefix(string(d), chdirPrefix)))
}

// Options configures directive execution. The zero value means:
// run through DefaultShell, inherit the process environment, and
// stream output to the process stdout/stderr.
type Options struct {
	// Shell is the interpreter for non-chdir directives
	Shell string

	// Env holds extra KEY=VALUE pairs appended to the inherited environment
	Env []string

	// Stdout and Stderr receive the subprocess streams
	Stdout io.Writer
	Stderr io.Writer
}

func (o *Options) withDefaults() Options {
	out := Options{Shell: DefaultShell, Stdout: os.Stdout, Stderr: os.Stderr}
	if o == nil {
		return out
	}
	if o.Shell != "" {
		out.Shell = o.Shell
	}
	if o.Stdout != nil {
		out.Stdout = o.Stdout
	}
	if o.Stderr != nil {
		out.Stderr = o.Stderr
	}
	out.Env = o.Env
	return out
}

// Dependency is the remediation attached to a batch of directives.
// It is a tagged variant: either a routine invoked with no arguments,
// or a nested directive list run through the runner itself. A nil
// *Dependency means faults propagate immediately.
type Dependency struct {
	routine    func() error
	directives []Directive
}

// Routine builds a dependency that invokes fn before the single retry
func Routine(fn func() error) *Dependency {
	return &Dependency{routine: fn}
}

// Directives builds a dependency that runs the given directives before
// the single retry
func Directives(ds ...Directive) *Dependency {
	return &Dependency{directives: ds}
}

// Runner executes directive batches. It owns the working-directory
// state that chdir directives mutate: the state is explicit on the
// Runner rather than process-wide, and it persists across Run calls
// on the same instance.
type Runner struct {
	dir    string
	logger zerolog.Logger
}

// New creates a Runner that starts in the inherited working directory
func New() *Runner {
	return &Runner{
		logger: logging.GetLogger("runner"),
	}
}

// Dir returns the runner's current working directory. Empty means the
// inherited process working directory (no chdir directive has run yet).
func (r *Runner) Dir() string {
	return r.dir
}

// Run executes directives strictly in order. Directive i+1 never
// starts before directive i completes. On the first failing directive
// the dependency, if any, runs once; the failing directive (and only
// that directive) is then retried exactly once with the dependency
// cleared. A second failure, or a failure inside the dependency
// itself, aborts the batch.
func (r *Runner) Run(directives []Directive, dep *Dependency, opts *Options) error {
	o := opts.withDefaults()

	for _, directive := range directives {
		fmt.Fprintf(o.Stdout, "Running command: %s\n", directive)

		if directive.IsChdir() {
			if err := r.chdir(directive); err != nil {
				return err
			}
			continue
		}

		err := r.exec(directive, o)
		if err == nil {
			continue
		}

		if dep == nil {
			return err
		}

		r.logger.Info().
			Str("directive", string(directive)).
			Msg("Directive failed, running dependency action")

		if depErr := r.runDependency(dep, opts); depErr != nil {
			return errors.Wrapf(depErr, errors.ErrDependencyExec,
				"dependency action failed for directive: %s", directive)
		}

		// Single retry of only the failing directive, dependency cleared
		if err := r.Run([]Directive{directive}, nil, opts); err != nil {
			return err
		}
	}

	return nil
}

// Output executes a single directive through the shell and returns its
// captured stdout. Used for queries (xrandr state and the like) where
// the caller consumes the output instead of the terminal.
func (r *Runner) Output(directive Directive, opts *Options) (string, error) {
	o := opts.withDefaults()

	cmd := exec.Command(o.Shell, "-c", string(directive))
	cmd.Dir = r.dir
	cmd.Env = append(os.Environ(), o.Env...)
	cmd.Stderr = o.Stderr

	out, err := cmd.Output()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrDirectiveExec,
			"directive failed: %s", directive)
	}
	return string(out), nil
}

func (r *Runner) runDependency(dep *Dependency, opts *Options) error {
	if dep.routine != nil {
		return dep.routine()
	}
	return r.Run(dep.directives, nil, opts)
}

func (r *Runner) exec(directive Directive, o Options) error {
	logging.LogDirective(string(directive), r.dir)

	cmd := exec.Command(o.Shell, "-c", string(directive))
	cmd.Dir = r.dir
	cmd.Env = append(os.Environ(), o.Env...)
	cmd.Stdout = o.Stdout
	cmd.Stderr = o.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		r.logger.Error().
			Err(err).
			Str("directive", string(directive)).
			Msg("Directive execution failed")
		return errors.Wrapf(err, errors.ErrDirectiveExec,
			"directive failed: %s", directive).
			WithDetail("directive", string(directive))
	}

	return nil
}

// chdir resolves and records the new working directory for all
// subsequent directives. Relative targets resolve against the
// runner's current directory.
func (r *Runner) chdir(directive Directive) error {
	target := directive.ChdirTarget()

	if !strings.HasPrefix(target, "/") {
		base := r.dir
		if base == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, errors.ErrChdir, "cannot resolve working directory")
			}
			base = cwd
		}
		target = base + "/" + target
	}

	info, err := os.Stat(target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrChdir, "cannot change directory to %s", target)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrChdir, "not a directory: %s", target)
	}

	r.logger.Debug().Str("dir", target).Msg("Changing working directory")
	r.dir = target
	return nil
}
