// Package pattern compiles human-friendly match patterns into executable
// matchers over a call's (type, method) identity.
//
// # Pattern Shapes
//
// Four shapes are recognized, classified in this order:
//
//   - `execution(...)`, `within(...)`, `@...` - Raw matcher expression,
//     used as-is
//   - `svc.order.*` - Package pattern (trailing .*): every method of every
//     type in the package and its subpackages
//   - `svc.order.Repo.save` - Method pattern (at least two dots, last
//     segment starting lowercase): one method on one type
//   - `svc.order.Repo` - Class pattern (everything else): every method of
//     one type
//
// Classification is deterministic and total: any non-blank pattern maps to
// exactly one shape. The method heuristic intentionally follows the
// lowercase naming convention, so a pattern whose last segment starts with
// an uppercase letter is always a class pattern; use a raw expression to
// match such a method by name.
package pattern
