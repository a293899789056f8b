package pattern

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind identifies the shape of a match pattern. The shape is determined
// once at compile time so matching involves no string analysis.
type Kind int

const (
	// KindExpression is a raw matcher expression, used as-is.
	KindExpression Kind = iota
	// KindPackage matches every method of every type in a package and
	// its subpackages ("svc.order.*").
	KindPackage
	// KindMethod matches a single named method on a single named type
	// ("svc.order.Repo.save").
	KindMethod
	// KindClass matches every method of one named type ("svc.order.Repo").
	KindClass
)

// String returns the configuration-facing name of the kind
func (k Kind) String() string {
	switch k {
	case KindExpression:
		return "expression"
	case KindPackage:
		return "package"
	case KindMethod:
		return "method"
	default:
		return "class"
	}
}

// expressionMarkers are the reserved prefixes that mark a pattern as a
// raw matcher expression rather than a package/class/method shorthand.
var expressionMarkers = []string{"execution", "within", "@"}

// Classify determines the pattern kind for a non-blank pattern.
// The checks are order sensitive: expression, then package, then method,
// with class as the fallback. Every input maps to exactly one kind.
func Classify(pattern string) Kind {
	for _, marker := range expressionMarkers {
		if strings.HasPrefix(pattern, marker) {
			return KindExpression
		}
	}

	if strings.HasSuffix(pattern, ".*") {
		return KindPackage
	}

	if isMethodPattern(pattern) {
		return KindMethod
	}

	return KindClass
}

// isMethodPattern reports whether the pattern names a single method,
// i.e. "pkg.Type.method". Heuristic: at least two dots and the last
// segment starts with a lowercase letter. A final segment starting with
// an uppercase letter is never treated as a method name; such patterns
// fall through to class treatment. Configuration authors who need to
// match an uppercase-leading method must use a raw expression instead.
func isMethodPattern(pattern string) bool {
	lastDot := strings.LastIndexByte(pattern, '.')
	if lastDot <= 0 || lastDot >= len(pattern)-1 {
		return false
	}

	tail := pattern[lastDot+1:]
	first, _ := utf8.DecodeRuneInString(tail)
	return unicode.IsLower(first) && strings.Count(pattern, ".") >= 2
}

// Matcher is the compiled, evaluable form of a match pattern. It is
// immutable after Compile and safe for concurrent use.
type Matcher struct {
	kind    Kind
	pattern string

	// package patterns: required qualified-type-name prefix, with
	// trailing dot ("svc.order.")
	pkgPrefix string

	// method patterns
	typeName   string
	methodName string

	// expression patterns: translated glob over the slash-joined call
	// name, empty if the expression could not be translated
	glob string
	// typeScoped is set for within() expressions, which constrain the
	// declaring type only
	typeScoped bool
}

// Kind returns the classified kind of the compiled pattern
func (m Matcher) Kind() Kind {
	return m.kind
}

// Pattern returns the original pattern string
func (m Matcher) Pattern() string {
	return m.pattern
}

// Compile turns a match pattern into a Matcher. It never fails for
// non-blank input: anything that is not an expression, package, or
// method pattern compiles as a class pattern, even when the named type
// cannot exist. Behavior is undefined for blank input; callers filter
// blank patterns before compiling.
func Compile(pattern string) Matcher {
	m := Matcher{kind: Classify(pattern), pattern: pattern}

	switch m.kind {
	case KindExpression:
		m.glob, m.typeScoped = translateExpression(pattern)
	case KindPackage:
		m.pkgPrefix = strings.TrimSuffix(pattern, "*")
	case KindMethod:
		lastDot := strings.LastIndexByte(pattern, '.')
		m.typeName = pattern[:lastDot]
		m.methodName = pattern[lastDot+1:]
	}

	return m
}

// Matches reports whether the compiled pattern accepts a call on the
// given fully-qualified type and method
func (m Matcher) Matches(typeName, methodName string) bool {
	switch m.kind {
	case KindExpression:
		if m.glob == "" {
			return false
		}
		name := typeName
		if !m.typeScoped {
			name = typeName + "." + methodName
		}
		matched, err := doublestar.Match(m.glob, strings.ReplaceAll(name, ".", "/"))
		return err == nil && matched
	case KindPackage:
		// The stripped prefix may name the package of the declaring
		// type, or the declaring type itself with the method completing
		// the name, so the full call name is what gets tested
		return strings.HasPrefix(typeName+"."+methodName, m.pkgPrefix)
	case KindMethod:
		return typeName == m.typeName && methodName == m.methodName
	default:
		return typeName == m.pattern
	}
}

// translateExpression converts a raw matcher expression into a
// doublestar glob over the slash-joined qualified name. Supported forms
// are "execution(* <name-pattern>(..))" and "within(<name-pattern>)",
// where ".." in the name pattern spans any number of segments. An
// expression outside these forms yields an empty glob, which matches
// nothing; no deeper validation is attempted.
func translateExpression(expr string) (glob string, typeScoped bool) {
	var body string

	switch {
	case strings.HasPrefix(expr, "execution(") && strings.HasSuffix(expr, ")"):
		body = strings.TrimSuffix(strings.TrimPrefix(expr, "execution("), ")")
		body = strings.TrimPrefix(body, "* ")
		body = strings.TrimSuffix(body, "(..)")
	case strings.HasPrefix(expr, "within(") && strings.HasSuffix(expr, ")"):
		body = strings.TrimSuffix(strings.TrimPrefix(expr, "within("), ")")
		typeScoped = true
	default:
		return "", false
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return "", false
	}

	// ".." spans any number of segments, "." is a single separator
	const spanToken = "\x00"
	body = strings.ReplaceAll(body, "..", spanToken)
	body = strings.ReplaceAll(body, ".", "/")
	body = strings.ReplaceAll(body, spanToken, "/**/")
	body = strings.ReplaceAll(body, "//", "/")

	return body, typeScoped
}
