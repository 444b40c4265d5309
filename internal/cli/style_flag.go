package cli

import "strings"

const (
	styleShorthandArgument = "-st"
	styleLongArgument      = "--" + styleFlagName
	argumentTerminator     = "--"
	flagValueSeparator     = "="
)

// normalizeStyleShorthand rewrites the two-letter "-st" shorthand, which pflag
// cannot register, into "--style". The forms "-st X", "-st=X", and "-stX" are
// accepted. Arguments after "--" are left untouched.
func normalizeStyleShorthand(arguments []string) []string {
	if len(arguments) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index, currentArgument := range arguments {
		if currentArgument == argumentTerminator {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		switch {
		case currentArgument == styleShorthandArgument:
			normalized = append(normalized, styleLongArgument)
		case strings.HasPrefix(currentArgument, styleShorthandArgument+flagValueSeparator):
			normalized = append(normalized, styleLongArgument+flagValueSeparator+strings.TrimPrefix(currentArgument, styleShorthandArgument+flagValueSeparator))
		case strings.HasPrefix(currentArgument, styleShorthandArgument):
			normalized = append(normalized, styleLongArgument+flagValueSeparator+strings.TrimPrefix(currentArgument, styleShorthandArgument))
		default:
			normalized = append(normalized, currentArgument)
		}
	}
	return normalized
}
