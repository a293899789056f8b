package interceptor

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/methodlog/pkg/registry"
	"github.com/arthur-debert/methodlog/pkg/rules"
)

// Literals used in log records in place of real values
const (
	protectedLiteral = "[PROTECTED]"
	notLoggedLiteral = "[NOT LOGGED]"
	voidLiteral      = "VOID"
	truncationMarker = "... (truncated)"
)

// Invocation is one intercepted call as delivered by the host's
// interception mechanism: the call's identity, its arguments, and a
// closure that performs the real call.
type Invocation struct {
	// TypeName is the fully-qualified name of the declaring type
	TypeName string

	// MethodName is the name of the invoked method
	MethodName string

	// Args are the call's arguments, rendered only when a matching
	// rule asks for them
	Args []interface{}

	// Proceed performs the real call and returns its result or error.
	// The interceptor invokes it exactly once and passes both values
	// back to the caller unchanged.
	Proceed func() (interface{}, error)
}

// Name returns the qualified "Type.method" form used in log records
func (inv Invocation) Name() string {
	return inv.TypeName + "." + inv.MethodName
}

// Interceptor decides, per intercepted call, whether and how to log it,
// based on the rules held by the registry. It never alters the call's
// result or error; its only side effect is writing records to the sink.
type Interceptor struct {
	registry *registry.Registry
	sink     Sink
}

// New creates an interceptor backed by the given registry. A nil sink
// defaults to the zerolog sink.
func New(reg *registry.Registry, sink Sink) *Interceptor {
	if sink == nil {
		sink = NewZerologSink()
	}
	return &Interceptor{registry: reg, sink: sink}
}

// Invoke runs one intercepted call. If logging is globally disabled or
// no rule matches, the real call is invoked directly with no further
// overhead. Otherwise an invocation record is written, the call is
// timed, and either a completion record (gated on the rule's duration
// threshold) or an exception record is written. The real result and
// error always pass through unchanged.
func (i *Interceptor) Invoke(inv Invocation) (interface{}, error) {
	if !i.registry.GlobalEnabled() {
		return inv.Proceed()
	}

	cfg, ok := i.registry.Match(inv.TypeName, inv.MethodName)
	if !ok {
		return inv.Proceed()
	}

	name := inv.Name()
	i.logInvocation(name, inv.Args, cfg)

	start := time.Now()
	defer func() {
		// A panicking call still gets its exception record before the
		// panic continues to the caller untouched
		if rec := recover(); rec != nil {
			elapsed := time.Since(start).Milliseconds()
			i.emit(func() {
				i.sink.Error(fmt.Sprintf("!! Exception in %s after %d ms. Error: panic: %v", name, elapsed, rec))
			})
			panic(rec)
		}
	}()

	result, err := inv.Proceed()
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		i.emit(func() {
			i.sink.Error(fmt.Sprintf("!! Exception in %s after %d ms. Error: %s", name, elapsed, err.Error()))
		})
		return result, err
	}

	i.logCompletion(name, result, elapsed, cfg)
	return result, nil
}

// logInvocation writes the pre-execution record. The argument field is
// omitted entirely when the rule does not ask for arguments.
func (i *Interceptor) logInvocation(name string, args []interface{}, cfg rules.RuleConfig) {
	i.emit(func() {
		if cfg.LogArguments {
			i.sink.Info(fmt.Sprintf(">>> Invoking %s with args: %s", name, formatArguments(args, cfg.MaskSensitive)))
		} else {
			i.sink.Info(fmt.Sprintf(">>> Invoking %s", name))
		}
	})
}

// logCompletion writes the post-execution record when the call took at
// least the rule's duration threshold
func (i *Interceptor) logCompletion(name string, result interface{}, elapsed int64, cfg rules.RuleConfig) {
	if elapsed < cfg.MinDurationMs {
		return
	}
	i.emit(func() {
		i.sink.Info(fmt.Sprintf("<<< Completed %s in %d ms. Result: %s", name, elapsed, formatResult(result, cfg)))
	})
}

// emit runs one record-writing step, containing any panic raised while
// rendering values. A rendering failure is reported on the sink's error
// channel and never reaches the intercepted call's caller.
func (i *Interceptor) emit(write func()) {
	defer func() {
		if rec := recover(); rec != nil {
			i.sink.Error(fmt.Sprintf("!! Logging failure suppressed: %v", rec))
		}
	}()
	write()
}

// formatArguments renders the argument list for the invocation record
func formatArguments(args []interface{}, mask bool) string {
	if mask {
		return protectedLiteral
	}
	parts := make([]string, len(args))
	for idx, arg := range args {
		parts[idx] = fmt.Sprintf("%v", arg)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatResult renders the result field of the completion record:
// VOID for an absent result, the not-logged or protected literals when
// the rule says so, else the rendered value truncated to the rule's
// maximum size.
func formatResult(result interface{}, cfg rules.RuleConfig) string {
	if result == nil {
		return voidLiteral
	}
	if !cfg.LogReturnValue {
		return notLoggedLiteral
	}
	if cfg.MaskSensitive {
		return protectedLiteral
	}

	rendered := fmt.Sprintf("%v", result)
	if cfg.MaxResultSize > -1 {
		// Count characters, not bytes, so a multi-byte rune is never
		// split mid-sequence
		if runes := []rune(rendered); len(runes) > cfg.MaxResultSize {
			rendered = string(runes[:cfg.MaxResultSize]) + truncationMarker
		}
	}
	return rendered
}
