package recipes

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/runner"
)

var dotfilesRecipe = &Recipe{
	Name:    "dotfiles",
	Summary: "Deploy the bare-repository dotfiles setup",
	Doc: `Sources the shared global.bashrc from /etc/bash.bashrc and clones
the configured dotfiles repository as a bare repo into ~/.dotfiles,
checking the work tree out directly into $HOME. Skips the clone when
~/.dotfiles already exists. Must not run as root.`,
	Run: func(ctx *Context, args []string) error {
		if err := guardNotRoot("dotfiles"); err != nil {
			return err
		}

		line := fmt.Sprintf("[ -r %s/global.bashrc   ] && . %s/global.bashrc",
			ctx.Config.FilesDir, ctx.Config.FilesDir)
		if err := ctx.LineInFile(line, "/etc/bash.bashrc"); err != nil {
			return err
		}

		if ctx.Config.DotfilesRepo == "" {
			return errors.New(errors.ErrConfigLoad,
				"dotfiles_repo is not configured; set it in rigup.toml or RIGUP_DOTFILES_REPO")
		}

		if !exists(paths.ExpandPath("~/.dotfiles")) {
			return ctx.Run([]runner.Directive{
				runner.Directive(fmt.Sprintf(
					"/usr/bin/git clone --bare %s $HOME/.dotfiles", ctx.Config.DotfilesRepo)),
				"/usr/bin/git --git-dir=$HOME/.dotfiles/ --work-tree=$HOME reset --hard",
				"/usr/bin/git --git-dir=$HOME/.dotfiles/ --work-tree=$HOME config --local status.showUntrackedFiles no",
			}, nil)
		}
		return nil
	},
}

var addSSHRecipe = &Recipe{
	Name:    "add-ssh",
	Summary: "Generate an SSH key pair and copy the public key",
	Params: []Param{
		{Name: "filename", Required: true, Desc: "Key file name under ~/.ssh"},
	},
	Doc: `Creates an SSH private and public key pair under ~/.ssh and
copies the public key to the clipboard. If xclip is missing it gets
installed and the failing step is retried once.`,
	Run: func(ctx *Context, args []string) error {
		filename := args[0]
		pubPath := paths.ExpandPath(fmt.Sprintf("~/.ssh/%s.pub", filename))

		return ctx.Run(
			[]runner.Directive{
				runner.Directive(fmt.Sprintf(
					`ssh-keygen -C %s -t rsa -b 4096 -N "" -f ~/.ssh/%s`,
					ctx.Config.SSHComment, filename)),
				runner.Directive(fmt.Sprintf("cat %s | xclip -selection clipboard", pubPath)),
			},
			runner.Routine(func() error {
				return ctx.Packages([]string{"xclip"})
			}),
		)
	},
}

var passwordRecipe = &Recipe{
	Name:    "password",
	Summary: "Generate a secure password into the clipboard",
	Params: []Param{
		{Name: "length", Required: false, Desc: "Password length (default 32)"},
	},
	Doc: `Generates a random password from /dev/urandom and copies it to
the clipboard. Installs xclip on demand and retries once.`,
	Run: func(ctx *Context, args []string) error {
		length := 32
		if len(args) > 0 {
			var err error
			length, err = strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrapf(err, errors.ErrRecipeArgs, "invalid length: %s", args[0])
			}
		}

		return ctx.Run(
			[]runner.Directive{
				runner.Directive(fmt.Sprintf(
					"< /dev/urandom tr -dc _A-Z-a-z-0-9 | head -c%d | xclip -selection clipboard", length)),
			},
			runner.Routine(func() error {
				return ctx.Packages([]string{"xclip"})
			}),
		)
	},
}

var pyflameRecipe = &Recipe{
	Name:    "pyflame",
	Summary: "Build and install pyflame",
	Doc: `Installs the autotools build chain, clones pyflame under
~/.local/lib and builds and installs it.`,
	Run: func(ctx *Context, args []string) error {
		installPath := paths.ExpandPath("~/.local/lib")

		err := ctx.Packages([]string{
			"autoconf", "automake", "autotools-dev", "g++", "pkg-config",
			"python-dev", "python3-dev", "libtool", "make",
		})
		if err != nil {
			return err
		}

		return ctx.Run([]runner.Directive{
			runner.Directive(fmt.Sprintf("git clone https://github.com/uber/pyflame.git %s", installPath)),
			runner.Directive(fmt.Sprintf("cd %s/pyflame", installPath)),
			"sudo ./autogen.sh",
			"sudo ./configure",
			"sudo make",
			"sudo make install",
		}, nil)
	},
}

var tmcCliRecipe = &Recipe{
	Name:    "tmc-cli",
	Summary: "Install TMC CLI",
	Doc:     `Installs the Test My Code command line client via its install script.`,
	Run: func(ctx *Context, args []string) error {
		return ctx.Run([]runner.Directive{
			"curl -0 https://raw.githubusercontent.com/testmycode/tmc-cli/master/scripts/install.sh | bash",
		}, nil)
	},
}

// odooVenvName derives the virtualenv name for a branch ("12.0" -> "odoo12")
func odooVenvName(branch string) string {
	return "odoo" + strings.TrimSuffix(branch, ".0")
}

// odooCheckout returns the branch's source checkout under the code dir
func odooCheckout(codeDir, branch string) string {
	return filepath.Join(codeDir, "odoo", strings.TrimSuffix(branch, ".0"), "odoo")
}

var odooVenvRecipe = &Recipe{
	Name:    "odoo-venv",
	Summary: "Create the python virtualenv for an odoo checkout",
	Params: []Param{
		{Name: "branch", Required: true, Desc: "Odoo branch, e.g. 12.0"},
	},
	Doc: `Creates ~/.venv/odoo<version> for the given branch (a python2
virtualenv up to 10.0, a python3 venv after) and installs the
checkout's python requirements into it, psycopg2 included. From 11.0
on the bank connector python packages are installed as well.

Missing tooling is remediated on demand: a failing venv creation
installs the python2 toolchain, a failing pip step installs the
odoo-deps system packages, each followed by a single retry.`,
	Run: func(ctx *Context, args []string) error {
		branch, err := parseBranch(args[0])
		if err != nil {
			return err
		}

		venvName := odooVenvName(args[0])
		checkout := odooCheckout(ctx.Config.CodeDir, args[0])
		pip := fmt.Sprintf("~/.venv/%s/bin/pip", venvName)

		if err := ctx.Run([]runner.Directive{"mkdir -p ~/.venv"}, nil); err != nil {
			return err
		}

		if !exists(paths.ExpandPath("~/.venv/" + venvName)) {
			if branch <= 10.0 {
				err = ctx.Run(
					[]runner.Directive{
						"cd ~/.venv",
						runner.Directive("python2 -m virtualenv -p python2 " + venvName),
					},
					runner.Routine(func() error {
						return ctx.Packages([]string{"python2", "python2-virtualenv"})
					}),
				)
			} else {
				err = ctx.Run([]runner.Directive{
					"cd ~/.venv",
					runner.Directive("python3 -m venv " + venvName),
				}, nil)
			}
			if err != nil {
				return err
			}
		}

		// A failing pip step means the system libraries are missing
		systemDeps := runner.Routine(func() error {
			return odooDepsRecipe.Run(ctx, args)
		})

		err = ctx.Run([]runner.Directive{
			runner.Directive(fmt.Sprintf(
				`sed "/psycopg2/d" %s/requirements.txt | %s install -r /dev/stdin psycopg2`,
				checkout, pip)),
		}, systemDeps)
		if err != nil {
			return err
		}

		if branch >= 11.0 {
			// Bank connector python deps
			return ctx.Run([]runner.Directive{
				runner.Directive(fmt.Sprintf("%s install zeep cryptography xmlsec", pip)),
			}, systemDeps)
		}
		return nil
	},
}

var odooDepsRecipe = &Recipe{
	Name:    "odoo-deps",
	Summary: "Install system dependencies for an odoo checkout",
	Params: []Param{
		{Name: "branch", Required: true, Desc: "Odoo branch, e.g. 12.0"},
	},
	Doc: `Installs the system packages an odoo development checkout needs
for the given branch (bank connector libraries from 11.0 on, the less
toolchain before 12.0), plus postgresql and wkhtmltopdf. The postgres
cluster initialization is best-effort: it fails harmlessly when the
cluster already exists.`,
	Run: func(ctx *Context, args []string) error {
		branch, err := parseBranch(args[0])
		if err != nil {
			return err
		}

		if branch >= 11.0 {
			err := ctx.Packages([]string{"xmlsec", "pwgen", "libxml2", "pkg-config"})
			if err != nil {
				return err
			}
		}
		if branch < 12.0 {
			if err := ctx.Packages([]string{"nodejs-less", "npm"}); err != nil {
				return err
			}
			err := ctx.Run([]runner.Directive{
				"sudo npm install --global less-plugin-clean-css",
			}, nil)
			if err != nil {
				return err
			}
		}

		if err := ctx.Packages([]string{"postgresql"}); err != nil {
			return err
		}
		if err := ctx.AUR([]string{"wkhtmltopdf-static"}); err != nil {
			return err
		}

		err = ctx.Run([]runner.Directive{
			`sudo -u postgres initdb --locale $LANG -E UTF8 -D '/var/lib/postgres/data/'`,
			"sudo systemctl enable --now postgresql.service",
			`sudo su - postgres -c "createuser -s $USER"`,
		}, nil)
		if err != nil {
			// Cluster and role already exist on re-runs
			ctx.Logger.Warn().Err(err).Msg("postgres setup skipped")
		}
		return nil
	},
}
