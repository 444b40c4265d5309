package cli

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/twig/internal/config"
	"github.com/temirov/twig/internal/patterns"
	"github.com/temirov/twig/internal/render"
	"github.com/temirov/twig/internal/tree"
	"github.com/temirov/twig/internal/utils"
)

const (
	treeSeparator = "\n"

	errorCopyFormat   = "copy to clipboard: %w"
	errorTokensFormat = "count tokens: %w"

	logRulesLoadedMessage = "loaded ignore rules"
	logTokenCountMessage  = "token count"
)

// runTrees builds every requested root concurrently, renders them, and prints
// the results in argument order. A failure in any root fails the whole run and
// nothing is printed.
func runTrees(directories []string, options treeOptions, dependencies Dependencies) error {
	style, styleError := render.StyleByName(options.style)
	if styleError != nil {
		return styleError
	}

	ignoreSource := config.NewIgnoreSource(options.ignoreFile, options.noIgnoreFile)
	fileRules, loadError := config.LoadIgnoreRules(ignoreSource)
	if loadError != nil {
		return loadError
	}
	dependencies.Logger.Debug(logRulesLoadedMessage, zap.Stringer("source", ignoreSource), zap.Int("rules", len(fileRules)))

	builder := &tree.Builder{
		Lister:   dependencies.Lister,
		Patterns: patterns.NewPatternSet(options.ignorePatterns, fileRules, options.collapsePatterns),
		Sort:     options.sort,
		Ellipses: options.ellipses,
		Logger:   dependencies.Logger,
	}

	uniqueDirectories := utils.DeduplicatePatterns(directories)
	renderedTrees := make([]string, len(uniqueDirectories))
	var group errgroup.Group
	for directoryIndex, directoryPath := range uniqueDirectories {
		group.Go(func() error {
			rootNode, buildError := builder.Build(directoryPath)
			if buildError != nil {
				return buildError
			}
			renderedTrees[directoryIndex] = render.Render(rootNode, style)
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return waitError
	}

	for _, renderedTree := range renderedTrees {
		if _, printError := fmt.Fprintln(dependencies.Stdout, renderedTree); printError != nil {
			return printError
		}
	}

	combinedOutput := strings.Join(renderedTrees, treeSeparator)
	if options.tokens {
		counter, resolvedModel, counterError := dependencies.NewCounter(options.model)
		if counterError != nil {
			return fmt.Errorf(errorTokensFormat, counterError)
		}
		tokenCount, countError := counter.CountString(combinedOutput)
		if countError != nil {
			return fmt.Errorf(errorTokensFormat, countError)
		}
		dependencies.Logger.Info(logTokenCountMessage, zap.Int("tokens", tokenCount), zap.String("model", resolvedModel))
	}
	if options.copy {
		if copyError := dependencies.Copier.Copy(combinedOutput); copyError != nil {
			return fmt.Errorf(errorCopyFormat, copyError)
		}
	}
	return nil
}
