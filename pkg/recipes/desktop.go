package recipes

import (
	"fmt"

	"github.com/arthur-debert/rigup/pkg/layout"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/runner"
)

var monitorRecipe = &Recipe{
	Name:    "monitor",
	Summary: "Autoconfigure dual monitor layout with xrandr",
	Doc: `Queries the current display adapter state and computes a layout:
with exactly two connected outputs the narrower one becomes the primary
display, centered directly beneath the wider one. Any other number of
outputs falls back to ` + "`xrandr --auto`" + `.`,
	Run: func(ctx *Context, args []string) error {
		out, err := ctx.Runner.Output(runner.Directive(layout.QueryCommand), ctx.Opts)
		if err != nil {
			return err
		}
		return ctx.Run([]runner.Directive{
			runner.Directive(layout.Plan(out)),
		}, nil)
	},
}

var appsRecipe = &Recipe{
	Name:    "apps",
	Summary: "User space apps from the AUR (run after distro)",
	Doc: `Bootstraps the AUR helper if missing, installs the desktop AUR
packages (greeter theme, chat clients, timeshift) and sets up the
awesome-copycats window manager configuration. Must not run as root.`,
	Run: func(ctx *Context, args []string) error {
		if err := guardNotRoot("apps"); err != nil {
			return err
		}

		helperDir := ctx.Config.AURHelperDir
		if !exists(helperDir) {
			err := ctx.Run([]runner.Directive{
				runner.Directive(fmt.Sprintf("sudo mkdir -p %s", helperDir)),
				runner.Directive(fmt.Sprintf("sudo chown $USER:$USER %s", helperDir)),
				runner.Directive(fmt.Sprintf("git clone https://aur.archlinux.org/yay.git %s", helperDir)),
				runner.Directive("cd " + helperDir),
				"makepkg -si",
				runner.Directive(fmt.Sprintf("sudo chown root:root %s", helperDir)),
			}, nil)
			if err != nil {
				return err
			}
		}

		err := ctx.AUR([]string{
			"lightdm-webkit-theme-aether-git",
			"whatsapp-nativefier-dark",
			"slack-desktop",
			"teams",
			"inxi",
			"timeshift",
		})
		if err != nil {
			return err
		}

		if !exists(paths.ExpandPath("~/.config/awesome-copycats")) {
			return ctx.Run([]runner.Directive{
				// Default the lightdm-webkit2-greeter theme to Aether
				`sudo sed -i 's/^webkit_theme\s*=\s*\(.*\)/webkit_theme = lightdm-webkit-theme-aether #\1/g' /etc/lightdm/lightdm-webkit2-greeter.conf`,
				`sudo sed -i 's/^\(#?greeter\)-session\s*=\s*\(.*\)/greeter-session = lightdm-webkit2-greeter #\1/ #\2g' /etc/lightdm/lightdm.conf`,
				`sudo sed -i "/^Icon=/c\Icon=/usr/share/lightdm-webkit/themes/lightdm-webkit-theme-aether/src/img/default-user.png" /var/lib/AccountsService/users/$USER`,
				"git clone --recursive https://github.com/elmeriniemela/awesome-copycats.git ~/.config/awesome-copycats",
				"ln -s ~/.config/awesome-copycats ~/.config/awesome",
				`sudo sed -i '/HandlePowerKey/s/.*/HandlePowerKey=ignore/g' /etc/systemd/logind.conf`,
				"sudo systemctl restart systemd-logind",
			}, nil)
		}
		return nil
	},
}

var materialAwesomeRecipe = &Recipe{
	Name:    "material-awesome",
	Summary: "Install the material-awesome window manager setup",
	Doc: `Installs the material-awesome dependencies (rofi, compton,
keyring, polkit, i3lock-fancy) and clones the configuration into
~/.config/material-awesome.`,
	Run: func(ctx *Context, args []string) error {
		if err := ctx.Packages([]string{"rofi", "compton", "xclip", "gnome-keyring", "polkit"}); err != nil {
			return err
		}
		if err := ctx.AUR([]string{"i3lock-fancy-git"}); err != nil {
			return err
		}
		return ctx.Run([]runner.Directive{
			"git clone https://github.com/HikariKnight/material-awesome.git ~/.config/material-awesome",
		}, nil)
	},
}

var flameshotRecipe = &Recipe{
	Name:    "flameshot",
	Summary: "Build flameshot from source",
	Doc: `Installs the Qt build dependencies, clones (or updates) the
flameshot sources under /opt/flameshot and builds and installs them.`,
	Run: func(ctx *Context, args []string) error {
		const installDir = "/opt/flameshot"

		err := ctx.Packages([]string{
			// Compile-time
			"qt5-base",
			"qt5-tools",
			// Run-time
			"qt5-svg",
		})
		if err != nil {
			return err
		}

		if !exists(installDir) {
			err = ctx.Run([]runner.Directive{
				runner.Directive(fmt.Sprintf("sudo git clone https://github.com/lupoDharkael/flameshot.git %s", installDir)),
			}, nil)
		} else {
			err = ctx.Run([]runner.Directive{
				runner.Directive("cd " + installDir),
				"sudo git pull",
			}, nil)
		}
		if err != nil {
			return err
		}

		err = ctx.Run([]runner.Directive{
			runner.Directive(fmt.Sprintf("sudo mkdir %s/build -p", installDir)),
		}, nil)
		if err != nil {
			return err
		}

		return ctx.Run([]runner.Directive{
			runner.Directive(fmt.Sprintf("cd %s/build", installDir)),
			"sudo qmake ../",
			"sudo make",
			"sudo make install",
		}, nil)
	},
}
