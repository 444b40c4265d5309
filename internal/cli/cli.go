// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/twig/internal/config"
	"github.com/temirov/twig/internal/render"
	"github.com/temirov/twig/internal/services/clipboard"
	"github.com/temirov/twig/internal/tokenizer"
	"github.com/temirov/twig/internal/tree"
	"github.com/temirov/twig/internal/utils"
)

const (
	ignoreFlagName        = "ignore"
	ignoreFlagShorthand   = "i"
	collapseFlagName      = "collapse"
	collapseFlagShorthand = "c"
	ellipsesFlagName      = "ellipses"
	ellipsesFlagShorthand = "e"
	sortFlagName          = "sort"
	sortFlagShorthand     = "s"
	styleFlagName         = "style"
	ignoreFileFlagName    = "ignore-file"
	noIgnoreFileFlagName  = "no-ignore-file"
	configFlagName        = "config"
	copyFlagName          = "copy"
	tokensFlagName        = "tokens"
	modelFlagName         = "model"
	verboseFlagName       = "verbose"
	verboseFlagShorthand  = "v"
	versionFlagName       = "version"
	globalFlagName        = "global"
	forceFlagName         = "force"

	defaultPath     = "."
	versionTemplate = "twig version: %s\n"

	rootUse              = "twig [directories...]"
	rootShortDescription = "print a directory tree with ignore and collapse rules"
	rootLongDescription  = `twig prints the directory tree below each given directory (default: the current directory).
Entries matching --ignore globs are omitted; a "!" prefix reinstates an entry an earlier rule excluded.
Directories matching --collapse globs are listed without their contents.
Each --ignore and --collapse flag takes exactly one pattern; repeat the flag for more
(-i '*.log' -i build), since a second bare word is read as a directory to print.
Rules from the built-in ignore file apply unless --ignore-file or --no-ignore-file says otherwise.
The style can also be selected with the short form -st.`
	rootUsageExample = `  # Sorted tree of the current directory
  twig -s

  # Hide everything under any data directory but keep the directory itself
  twig -i '*/data/*' -i '!*/data/' .

  # Collapse vendor directories, show a placeholder, use heavy lines
  twig -c vendor -e -st heavy ./project`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write a default configuration file to ./.twig.yaml, or to ~/.twig/config.yaml with --global.`

	ignoreFlagDescription       = "glob pattern of entries to omit; prefix with ! to reinstate (repeatable)"
	collapseFlagDescription     = "glob pattern of directories whose contents are not listed (repeatable)"
	ellipsesFlagDescription     = "show a ... placeholder inside collapsed directories"
	sortFlagDescription         = "sort directory entries lexicographically"
	styleFlagDescription        = "line style: normal, heavy, or double (short form -st)"
	ignoreFileFlagDescription   = "read extra ignore rules from this file instead of the built-in rules"
	noIgnoreFileFlagDescription = "do not apply any ignore-rule file"
	configFlagDescription       = "configuration file to use instead of ./.twig.yaml"
	copyFlagDescription         = "copy the rendered tree to the clipboard"
	tokensFlagDescription       = "log the token count of the rendered tree"
	modelFlagDescription        = "tokenizer model used with --tokens"
	verboseFlagDescription      = "log debug details about skipped and collapsed entries"
	versionFlagDescription      = "display application version"
	globalFlagDescription       = "write the global configuration file"
	forceFlagDescription        = "overwrite an existing configuration file"

	initWrittenFormat = "configuration written to %s\n"
)

// Dependencies carries collaborators the commands use. Zero values select
// production implementations.
type Dependencies struct {
	Logger           *zap.Logger
	LogLevel         *zap.AtomicLevel
	Stdout           io.Writer
	Lister           tree.Lister
	Copier           clipboard.Copier
	NewCounter       func(model string) (tokenizer.Counter, string, error)
	WorkingDirectory string
	HomeDirectory    string
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Stdout == nil {
		dependencies.Stdout = os.Stdout
	}
	if dependencies.Lister == nil {
		dependencies.Lister = tree.NewOsLister()
	}
	if dependencies.Copier == nil {
		dependencies.Copier = clipboard.NewService()
	}
	if dependencies.NewCounter == nil {
		dependencies.NewCounter = tokenizer.NewCounter
	}
	return dependencies
}

// Execute runs twig with the process arguments.
func Execute(logger *zap.Logger, logLevel *zap.AtomicLevel) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger, LogLevel: logLevel})
	rootCommand.SetArgs(normalizeStyleShorthand(os.Args[1:]))
	return rootCommand.Execute()
}

// treeOptions stores the values bound to the root command flags.
type treeOptions struct {
	ignorePatterns   []string
	collapsePatterns []string
	ellipses         bool
	sort             bool
	style            string
	ignoreFile       string
	noIgnoreFile     bool
	configPath       string
	copy             bool
	tokens           bool
	model            string
	verbose          bool
	showVersion      bool
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var options treeOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if options.verbose && dependencies.LogLevel != nil {
				dependencies.LogLevel.SetLevel(zap.DebugLevel)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, printError := fmt.Fprintf(dependencies.Stdout, versionTemplate, utils.GetApplicationVersion())
				return printError
			}
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			resolvedOptions, resolveError := resolveTreeOptions(command, options, dependencies)
			if resolveError != nil {
				return resolveError
			}
			return runTrees(arguments, resolvedOptions, dependencies)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringArrayVarP(&options.ignorePatterns, ignoreFlagName, ignoreFlagShorthand, nil, ignoreFlagDescription)
	flagSet.StringArrayVarP(&options.collapsePatterns, collapseFlagName, collapseFlagShorthand, nil, collapseFlagDescription)
	flagSet.BoolVarP(&options.ellipses, ellipsesFlagName, ellipsesFlagShorthand, false, ellipsesFlagDescription)
	flagSet.BoolVarP(&options.sort, sortFlagName, sortFlagShorthand, false, sortFlagDescription)
	flagSet.StringVar(&options.style, styleFlagName, render.StyleNormal, styleFlagDescription)
	flagSet.StringVar(&options.ignoreFile, ignoreFileFlagName, "", ignoreFileFlagDescription)
	flagSet.BoolVar(&options.noIgnoreFile, noIgnoreFileFlagName, false, noIgnoreFileFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flagSet.BoolVar(&options.copy, copyFlagName, false, copyFlagDescription)
	flagSet.BoolVar(&options.tokens, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().BoolVarP(&options.verbose, verboseFlagName, verboseFlagShorthand, false, verboseFlagDescription)

	rootCommand.AddCommand(createInitCommand(dependencies))
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// resolveTreeOptions overlays configuration file values onto flags the user
// did not set explicitly.
func resolveTreeOptions(command *cobra.Command, options treeOptions, dependencies Dependencies) (treeOptions, error) {
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: dependencies.WorkingDirectory,
		HomeDirectory:    dependencies.HomeDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return treeOptions{}, loadError
	}

	flagSet := command.Flags()
	resolved := options
	if !flagSet.Changed(ignoreFlagName) {
		resolved.ignorePatterns = applicationConfiguration.Ignore
	}
	if !flagSet.Changed(collapseFlagName) {
		resolved.collapsePatterns = applicationConfiguration.Collapse
	}
	if !flagSet.Changed(ellipsesFlagName) {
		resolved.ellipses = config.BoolOr(applicationConfiguration.Ellipses, options.ellipses)
	}
	if !flagSet.Changed(sortFlagName) {
		resolved.sort = config.BoolOr(applicationConfiguration.Sort, options.sort)
	}
	if !flagSet.Changed(styleFlagName) && applicationConfiguration.Style != "" {
		resolved.style = applicationConfiguration.Style
	}
	if !flagSet.Changed(ignoreFileFlagName) && applicationConfiguration.IgnoreFile != "" {
		resolved.ignoreFile = applicationConfiguration.IgnoreFile
	}
	if !flagSet.Changed(noIgnoreFileFlagName) {
		resolved.noIgnoreFile = config.BoolOr(applicationConfiguration.NoIgnoreFile, options.noIgnoreFile)
	}
	if !flagSet.Changed(copyFlagName) {
		resolved.copy = config.BoolOr(applicationConfiguration.Copy, options.copy)
	}
	if !flagSet.Changed(tokensFlagName) {
		resolved.tokens = config.BoolOr(applicationConfiguration.Tokens, options.tokens)
	}
	if !flagSet.Changed(modelFlagName) && applicationConfiguration.Model != "" {
		resolved.model = applicationConfiguration.Model
	}
	return resolved, nil
}

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies Dependencies) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: dependencies.WorkingDirectory,
				HomeDirectory:    dependencies.HomeDirectory,
			})
			if initError != nil {
				return initError
			}
			_, printError := fmt.Fprintf(dependencies.Stdout, initWrittenFormat, writtenPath)
			return printError
		},
	}
	initCommand.Flags().BoolVar(&global, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}
