package rigup

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Set up your Linux machine from named recipes"
	MsgRunShort        = "Run a setup recipe"
	MsgListShort       = "List all available recipes"
	MsgInfoShort       = "Show detailed documentation for a recipe"
	MsgGenConfigShort  = "Print the rigup configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgRecipeDone      = "Recipe '%s' finished"
	MsgNoRecipesFound  = "No recipes found."
	MsgAvailableHeader = "Available recipes:"
	MsgBye             = "Bye"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRecipes   = "Path to a user recipes file (default: $XDG_CONFIG_HOME/rigup/recipes.yaml)"
	MsgFlagEffective = "Print the effective configuration instead of the commented defaults"
)

// Long messages
const (
	MsgRootLong = `rigup is a personal machine-provisioning helper: a registry of named
setup recipes (package installation, dotfile deployment, display
layout, development environment bootstrap) run one at a time from the
command line.

Recipes execute ordered shell directives synchronously, streaming
their output to the terminal. A directive failure can trigger a
recipe's dependency action once, followed by a single retry.`

	MsgRunLong = `Run resolves the named recipe and executes it with the given
arguments. Directives stream their output directly to the terminal;
the first unrecovered failure aborts the recipe.`

	MsgInfoLong = `Info renders the recipe's documentation, signature and summary as
formatted markdown.`

	MsgGenConfigLong = `Genconfig prints the default configuration file with comments,
ready to be saved as $XDG_CONFIG_HOME/rigup/rigup.toml. With
--effective it prints the currently loaded configuration instead.`

	MsgCompletionLong = `To load completions:

Bash:
  $ source <(rigup completion bash)
  # To load completions for each session, execute once:
  $ rigup completion bash > /etc/bash_completion.d/rigup

Zsh:
  $ rigup completion zsh > "${fpath[1]}/_rigup"

Fish:
  $ rigup completion fish | source
  $ rigup completion fish > ~/.config/fish/completions/rigup.fish
`
)
