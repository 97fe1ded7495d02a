package recipes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/runner"
)

// defaultPacmanFlags install packages without prompting
var defaultPacmanFlags = []string{"-S", "--noconfirm"}

// sudoPrefix returns "sudo " unless the process already runs as root
func sudoPrefix() string {
	if os.Geteuid() != 0 {
		return "sudo "
	}
	return ""
}

// packagesDirective builds the pacman invocation for the given packages
func packagesDirective(packages []string, flags []string, sudo string) runner.Directive {
	parts := append([]string{strings.TrimSpace(sudo + "pacman")}, flags...)
	parts = append(parts, packages...)
	return runner.Directive(strings.Join(parts, " "))
}

// aurDirective builds the AUR helper invocation for the given packages
func aurDirective(packages []string, flags []string) runner.Directive {
	parts := append([]string{"yay"}, flags...)
	parts = append(parts, packages...)
	return runner.Directive(strings.Join(parts, " "))
}

// lineInFileDirective appends line to filename unless it is already
// present verbatim
func lineInFileDirective(line, filename string) runner.Directive {
	escaped := strings.ReplaceAll(line, "'", `\'`)
	return runner.Directive(fmt.Sprintf(
		"grep -qxF $'%s' %s || echo $'%s' | sudo tee -a %s",
		escaped, filename, escaped, filename))
}

// Packages installs the given packages with pacman. Without explicit
// flags it installs non-interactively (-S --noconfirm).
func (c *Context) Packages(packages []string, flags ...string) error {
	if len(flags) == 0 {
		flags = defaultPacmanFlags
	}
	return c.Run([]runner.Directive{
		packagesDirective(packages, flags, sudoPrefix()),
	}, nil)
}

// AUR installs the given packages with the AUR helper. The helper
// refuses to run as root, so no sudo prefix is applied.
func (c *Context) AUR(packages []string, flags ...string) error {
	if len(flags) == 0 {
		flags = defaultPacmanFlags
	}
	return c.Run([]runner.Directive{
		aurDirective(packages, flags),
	}, nil)
}

// LineInFile idempotently appends a line to a (possibly root-owned) file
func (c *Context) LineInFile(line, filename string) error {
	return c.Run([]runner.Directive{
		lineInFileDirective(line, filename),
	}, nil)
}

// CopyFiles copies payload files from the configured files directory
// to their destinations, one directive per file in name order
func (c *Context) CopyFiles(files map[string]string) error {
	sudo := sudoPrefix()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dest := files[name]
		src := filepath.Join(c.Config.FilesDir, name)
		if !exists(src) {
			return errors.Newf(errors.ErrFileNotFound, "payload file missing: %s", src)
		}
		err := c.Run([]runner.Directive{
			runner.Directive(fmt.Sprintf("%scp %s %s", sudo, src, dest)),
		}, nil)
		if err != nil {
			return err
		}
	}
	return nil
}
