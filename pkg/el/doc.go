// Package el implements the Expression Language (EL): a small embedded
// language used to parameterize processor properties with literal text
// interleaved with ${…} expressions that read per-record string
// attributes, invoke built-in functions, and compose them through the ':'
// chaining operator.
//
//	expr, err := el.Compile("Hello, ${name:toUpper()}!")
//	if err != nil {
//		// err is a *el.ParseError
//	}
//	v, err := expr.Evaluate(el.RecordSet{el.MapRecord{"name": "ada"}})
//	v.AsString() // "Hello, ADA!"
//
// Apart from the logging, metrics and tracing a caller enables through
// CompileOption, Compile has no side effects; the resulting Expression is
// immutable and safe to share and evaluate concurrently across goroutines.
package el
