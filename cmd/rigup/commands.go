package rigup

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/rigup/internal/version"
	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/recipes"
	"github.com/arthur-debert/rigup/pkg/registry"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/arthur-debert/rigup/pkg/style"
)

// loadRegistry builds the recipe registry (built-ins plus any user
// recipes file)
func loadRegistry(recipesFile string) (registry.Registry[*recipes.Recipe], error) {
	return recipes.NewRegistry(recipesFile)
}

// newRecipeContext wires a recipe execution context from the loaded
// configuration and a fresh runner
func newRecipeContext() (*recipes.Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return recipes.NewContext(runner.New(), cfg), nil
}

// completeRecipeNames provides recipe-name tab completion for the
// first positional argument
func completeRecipeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	reg, err := loadRegistry("")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return recipes.Complete(reg, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func newRunCmd() *cobra.Command {
	var recipesFile string

	cmd := &cobra.Command{
		Use:               "run <recipe> [args...]",
		Short:             MsgRunShort,
		Long:              MsgRunLong,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeRecipeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(recipesFile)
			if err != nil {
				return err
			}

			recipe, err := recipes.Lookup(reg, args[0])
			if err != nil {
				return err
			}
			if err := recipe.CheckArgs(args[1:]); err != nil {
				return err
			}

			ctx, err := newRecipeContext()
			if err != nil {
				return err
			}

			start := time.Now()
			if err := recipe.Run(ctx, args[1:]); err != nil {
				return err
			}
			logging.LogDuration(start, recipe.Name)

			fmt.Fprintln(cmd.OutOrStdout(), style.RenderSuccess(fmt.Sprintf(MsgRecipeDone, recipe.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&recipesFile, "recipes", "", MsgFlagRecipes)
	return cmd
}

func newListCmd() *cobra.Command {
	var recipesFile string

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(recipesFile)
			if err != nil {
				return err
			}

			names := reg.List()
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoRecipesFound)
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, style.TitleStyle.Render(MsgAvailableHeader))
			fmt.Fprintln(out)
			for _, name := range names {
				recipe, err := reg.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %s\n", style.NameStyle.Render(recipe.Signature()))
				fmt.Fprintf(out, "%s\n", style.Indent(style.MutedStyle.Render(recipe.Summary), 2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&recipesFile, "recipes", "", MsgFlagRecipes)
	return cmd
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "info <recipe>",
		Short:             MsgInfoShort,
		Long:              MsgInfoLong,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeRecipeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry("")
			if err != nil {
				return err
			}
			recipe, err := recipes.Lookup(reg, args[0])
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderRecipeDoc(recipe))
			return nil
		},
	}
	return cmd
}

// renderRecipeDoc converts the recipe's documentation to terminal
// markdown, falling back to the raw text when rendering fails
func renderRecipeDoc(recipe *recipes.Recipe) string {
	doc := fmt.Sprintf("# %s\n\n%s\n", recipe.Signature(), recipe.Summary)
	if recipe.Doc != "" {
		doc += "\n" + recipe.Doc + "\n"
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return doc
	}
	rendered, err := renderer.Render(doc)
	if err != nil {
		return doc
	}
	return rendered
}

func newGenConfigCmd() *cobra.Command {
	var effective bool

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !effective {
				fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultConfigContent())
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			out, err := cfg.MarshalTOML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rigup version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Built:  %s\n", version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
