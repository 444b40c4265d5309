package patterns

import (
	"regexp"
	"strings"
)

const (
	globAnyRun       = '*'
	globAnyCharacter = '?'
	globClassOpen    = '['
	globClassClose   = ']'
	globClassNegate  = '!'
	globClassRange   = '-'

	anyCharacterExpression = `.`
	emptyClassExpression   = `[^\x00-\x{10FFFF}]`
)

// compileGlob translates a shell-style glob into an anchored regular expression.
// A star crosses path separators, so "*/data" matches "/var/data". The
// translation never fails: an expression the regexp package rejects falls back
// to matching the pattern literally.
func compileGlob(pattern string) *regexp.Regexp {
	compiled, compileError := regexp.Compile(translateGlob(pattern))
	if compileError != nil {
		return regexp.MustCompile(`(?s)\A` + regexp.QuoteMeta(pattern) + `\z`)
	}
	return compiled
}

func translateGlob(pattern string) string {
	var expression strings.Builder
	expression.WriteString(`(?s)\A`)

	characters := []rune(pattern)
	characterCount := len(characters)
	for index := 0; index < characterCount; index++ {
		current := characters[index]
		switch current {
		case globAnyRun:
			for index+1 < characterCount && characters[index+1] == globAnyRun {
				index++
			}
			expression.WriteString(`.*`)
		case globAnyCharacter:
			expression.WriteString(anyCharacterExpression)
		case globClassOpen:
			closingIndex := findClassClose(characters, index+1)
			if closingIndex < 0 {
				expression.WriteString(`\[`)
				continue
			}
			expression.WriteString(translateClass(characters[index+1 : closingIndex]))
			index = closingIndex
		default:
			expression.WriteString(regexp.QuoteMeta(string(current)))
		}
	}

	expression.WriteString(`\z`)
	return expression.String()
}

// findClassClose returns the index of the bracket closing a class that opens
// just before start, or -1 when the class is unterminated. A leading negation
// mark and a leading closing bracket both belong to the class body.
func findClassClose(characters []rune, start int) int {
	position := start
	if position < len(characters) && characters[position] == globClassNegate {
		position++
	}
	if position < len(characters) && characters[position] == globClassClose {
		position++
	}
	for position < len(characters) && characters[position] != globClassClose {
		position++
	}
	if position >= len(characters) {
		return -1
	}
	return position
}

// translateClass converts a class body. Ranges whose bounds are reversed are
// dropped along with their bounds, so "[z-ab]" still matches "b". A class left
// with no members matches nothing, or any single character when negated.
func translateClass(body []rune) string {
	negated := len(body) > 0 && body[0] == globClassNegate
	if negated {
		body = body[1:]
	}

	var members strings.Builder
	for bodyIndex := 0; bodyIndex < len(body); bodyIndex++ {
		low := body[bodyIndex]
		if bodyIndex+2 < len(body) && body[bodyIndex+1] == globClassRange {
			high := body[bodyIndex+2]
			bodyIndex += 2
			if low > high {
				continue
			}
			members.WriteString(escapeClassMember(low))
			members.WriteRune(globClassRange)
			members.WriteString(escapeClassMember(high))
			continue
		}
		members.WriteString(escapeClassMember(low))
	}

	if members.Len() == 0 {
		if negated {
			return anyCharacterExpression
		}
		return emptyClassExpression
	}
	if negated {
		return "[^" + members.String() + "]"
	}
	return "[" + members.String() + "]"
}

func escapeClassMember(member rune) string {
	if member == globClassRange {
		return `\-`
	}
	return regexp.QuoteMeta(string(member))
}
