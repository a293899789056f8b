package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		expected Kind
	}{
		{"execution expression", "execution(* svc.order..*(..))", KindExpression},
		{"within expression", "within(svc.order..*)", KindExpression},
		{"annotation expression", "@audit", KindExpression},
		{"package pattern", "svc.order.*", KindPackage},
		{"nested package pattern", "svc.order.billing.*", KindPackage},
		{"method pattern", "svc.order.Repo.save", KindMethod},
		{"deeply nested method pattern", "a.b.c.Repo.findAll", KindMethod},
		{"class pattern", "svc.order.Repo", KindClass},
		{"bare name", "Repo", KindClass},
		{"uppercase final segment is class, not method", "svc.order.Repo.Save", KindClass},
		{"single separator is never a method", "Repo.save", KindClass},
		{"leading separator", ".save", KindClass},
		{"trailing separator", "svc.order.", KindClass},
		{"two dots lowercase tail", "svc.Repo.save", KindMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.pattern))
		})
	}
}

func TestCompilePackagePattern(t *testing.T) {
	m := Compile("svc.order.*")
	assert.Equal(t, KindPackage, m.Kind())

	// Types in the package and subpackages match, any method
	assert.True(t, m.Matches("svc.order.Repo", "save"))
	assert.True(t, m.Matches("svc.order.Repo", "delete"))
	assert.True(t, m.Matches("svc.order.billing.Invoice", "total"))

	// Other packages do not
	assert.False(t, m.Matches("svc.payment.Gateway", "charge"))
	assert.False(t, m.Matches("svc.orders.Repo", "save"))
	assert.False(t, m.Matches("svc.Order", "save"))
}

func TestPackagePatternMatchesTypeNamedByPrefix(t *testing.T) {
	// "svc.Order.*" must also accept calls on the type svc.Order
	// itself: the method segment completes the qualified name
	m := Compile("svc.Order.*")
	assert.Equal(t, KindPackage, m.Kind())

	assert.True(t, m.Matches("svc.Order", "save"))
	assert.True(t, m.Matches("svc.Order.Line", "add"))

	assert.False(t, m.Matches("svc.OrderArchive", "save"))
	assert.False(t, m.Matches("svc.order", "save"))
}

func TestCompileMethodPattern(t *testing.T) {
	m := Compile("svc.order.Repo.save")
	assert.Equal(t, KindMethod, m.Kind())

	assert.True(t, m.Matches("svc.order.Repo", "save"))

	// Same type, different method
	assert.False(t, m.Matches("svc.order.Repo", "delete"))
	// Same method, different type
	assert.False(t, m.Matches("svc.order.Archive", "save"))
}

func TestCompileClassPattern(t *testing.T) {
	m := Compile("svc.order.Repo")
	assert.Equal(t, KindClass, m.Kind())

	assert.True(t, m.Matches("svc.order.Repo", "save"))
	assert.True(t, m.Matches("svc.order.Repo", "delete"))
	assert.False(t, m.Matches("svc.order.Archive", "save"))
}

func TestUppercaseTailCompilesToClassMatcher(t *testing.T) {
	// The whole pattern, final segment included, names the type. This
	// matches nothing useful when "Save" was meant as a method name;
	// that behavior is intentional.
	m := Compile("svc.order.Repo.Save")
	assert.Equal(t, KindClass, m.Kind())

	assert.True(t, m.Matches("svc.order.Repo.Save", "anything"))
	assert.False(t, m.Matches("svc.order.Repo", "Save"))
}

func TestCompileExecutionExpression(t *testing.T) {
	m := Compile("execution(* svc.order..*(..))")
	assert.Equal(t, KindExpression, m.Kind())

	assert.True(t, m.Matches("svc.order.Repo", "save"))
	assert.True(t, m.Matches("svc.order.billing.Invoice", "total"))
	assert.False(t, m.Matches("svc.payment.Gateway", "charge"))
}

func TestCompileExecutionExactMethod(t *testing.T) {
	m := Compile("execution(* svc.order.Repo.Save(..))")

	// Raw expressions are the escape hatch for uppercase method names
	assert.True(t, m.Matches("svc.order.Repo", "Save"))
	assert.False(t, m.Matches("svc.order.Repo", "save"))
}

func TestCompileWithinExpression(t *testing.T) {
	m := Compile("within(svc.order..*)")

	assert.True(t, m.Matches("svc.order.Repo", "save"))
	assert.True(t, m.Matches("svc.order.Repo", "delete"))
	assert.False(t, m.Matches("svc.payment.Gateway", "charge"))
}

func TestUntranslatableExpressionMatchesNothing(t *testing.T) {
	for _, p := range []string{"@audit", "execution(", "within()"} {
		m := Compile(p)
		assert.Equal(t, KindExpression, m.Kind(), p)
		assert.False(t, m.Matches("svc.order.Repo", "save"), p)
	}
}

func TestClassifyIsTotal(t *testing.T) {
	// Odd but non-blank inputs still classify to exactly one kind
	for _, p := range []string{"a", ".", "..", "a.b", "...*", "Repo.save.Do"} {
		k := Classify(p)
		assert.Contains(t, []Kind{KindExpression, KindPackage, KindMethod, KindClass}, k, p)
	}
}
