package recipes

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/runner"
)

// distroPackages is everything an empty Arch install needs to become usable
var distroPackages = []string{
	"sudo",
	"xorg",
	"lightdm",
	"lightdm-gtk-greeter",
	"lightdm-gtk-greeter-settings",
	"awesome",
	"base-devel",
	"networkmanager",
	"code",
	"firefox",
	"veracrypt",
	"sshpass",
	"thunderbird",
	"bind-tools",
	"vim",
	"htop",
	"zathura-pdf-mupdf",
	"konsole",
	"bash-completion",
	"ttf-bitstream-vera",
	"ttf-droid",
	"ttf-roboto",
	"alsa-utils",
	"pulseaudio",
	"pulseaudio-alsa",
	"pavucontrol",
	"arandr",
	"pcmanfm",
	"udisks2",
	"gvfs",
	"polkit-gnome",
	"udiskie",
	"unzip",
	"zip",
	"openssh",
	"network-manager-applet",
	"notification-daemon",
	"nm-connection-editor",
	"xorg-xev",
	"xarchiver",
	"light-locker",
	"rtorrent",
	"wget",
	"xclip",
	"feh",
	"libreoffice-fresh",
}

var distroRecipe = &Recipe{
	Name:    "distro",
	Summary: "Base system setup for a fresh Arch install",
	Doc: `Installs the base desktop package set (xorg, lightdm, awesome,
networking, fonts, audio), enables core services, generates locales,
creates the unprivileged user and deploys the system payload files
(backlight rules, hosts, locale.conf).

Run as root right after pacstrap. The unprivileged user name comes
from the ` + "`user`" + ` configuration key.`,
	Run: func(ctx *Context, args []string) error {
		if err := ctx.Packages(distroPackages); err != nil {
			return err
		}

		user := ctx.Config.User
		err := ctx.Run([]runner.Directive{
			"systemctl enable NetworkManager",
			"systemctl enable avahi-daemon",
			"systemctl enable lightdm",
			"sed -i '/^#en_US.UTF-8/s/^#//g' /etc/locale.gen",
			"sed -i '/^#fi_FI.UTF-8/s/^#//g' /etc/locale.gen",
			"locale-gen",
			"localectl --no-convert set-x11-keymap fi pc104",
			`echo "arch" > /etc/hostname`,
			`echo "kernel.sysrq=1" >> /etc/sysctl.d/99-sysctl.conf`,
			runner.Directive(fmt.Sprintf("useradd -m -G video,wheel -s /bin/bash %s", user)),
			runner.Directive(fmt.Sprintf("passwd %s", user)),
		}, nil)
		if err != nil {
			return err
		}

		return ctx.CopyFiles(map[string]string{
			"backlight.rules": "/etc/udev/rules.d/backlight.rules",
			"hosts":           "/etc/hosts",
			"locale.conf":     "/etc/locale.conf",
		})
	},
}

var updateRecipe = &Recipe{
	Name:    "update",
	Summary: "Full system update (pacman, AUR, system report)",
	Doc: `Refreshes all package databases and upgrades every installed
package, both from the official repositories and the AUR, then prints
a full system report with inxi.`,
	Run: func(ctx *Context, args []string) error {
		if err := ctx.Packages(nil, "-Syyu", "--noconfirm"); err != nil {
			return err
		}
		if err := ctx.AUR(nil, "-Syyu", "--noconfirm"); err != nil {
			return err
		}
		return ctx.Run([]runner.Directive{
			"inxi -Fxxxza --no-host",
		}, nil)
	},
}

var serialRecipe = &Recipe{
	Name:    "serial",
	Summary: "Print the machine serial number",
	Doc:     `Installs dmidecode if needed and prints the system serial number.`,
	Run: func(ctx *Context, args []string) error {
		if err := ctx.Packages([]string{"dmidecode"}); err != nil {
			return err
		}
		return ctx.Run([]runner.Directive{
			runner.Directive(sudoPrefix() + "dmidecode -s system-serial-number"),
		}, nil)
	},
}

var batteryRecipe = &Recipe{
	Name:    "battery",
	Summary: "Laptop battery management with tlp",
	Doc:     `Installs tlp and enables the service immediately.`,
	Run: func(ctx *Context, args []string) error {
		if err := ctx.Packages([]string{"tlp"}); err != nil {
			return err
		}
		return ctx.Run([]runner.Directive{
			"sudo systemctl enable --now tlp",
		}, nil)
	},
}

var swapfileRecipe = &Recipe{
	Name:    "swapfile",
	Summary: "Create and enable a swapfile",
	Params: []Param{
		{Name: "gigabytes", Required: true, Desc: "Swapfile size in gigabytes"},
	},
	Doc: `Creates /swapfile of the given size, activates it and makes it
permanent through /etc/fstab. The fstab entry is only appended once.`,
	Run: func(ctx *Context, args []string) error {
		gigabytes, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrapf(err, errors.ErrRecipeArgs, "invalid size: %s", args[0])
		}

		err = ctx.Run([]runner.Directive{
			runner.Directive(fmt.Sprintf(
				"sudo dd if=/dev/zero of=/swapfile bs=1M count=%d status=progress", gigabytes*1024)),
			"sudo chmod 600 /swapfile",
			"sudo mkswap /swapfile",
			"sudo swapon /swapfile",
		}, nil)
		if err != nil {
			return err
		}

		return ctx.LineInFile("/swapfile none swap defaults 0 0", "/etc/fstab")
	},
}

var backlightFixRecipe = &Recipe{
	Name:    "backlight-fix",
	Summary: "Fix backlight keys with acpilight",
	Doc: `Installs acpilight, which provides an xbacklight that works on
machines where the xorg one does not.`,
	Run: func(ctx *Context, args []string) error {
		return ctx.Packages([]string{"acpilight"})
	},
}
