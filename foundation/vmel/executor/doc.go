// Package executor evaluates parsed vmel programs.
//
// Package: executor
// Title: vmel Evaluator
// Description: Executes each root statement once and in order. Assignments
//              write their value back to the symbol table, keyword calls
//              append to the output, group and array roots are
//              declarations only. Runtime problems are recorded in the
//              diagnostic list and skip the statement that caused them.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
//
// Values
//
// Variables hold text. Arithmetic and comparisons work on int64 and wrap on
// overflow. Text that takes part in arithmetic is coerced: a decimal integer
// is parsed, anything else becomes the sum of its byte values. With
// Options.StrictCoercion the fallback is reported as runtime.not_a_number
// instead. A decimal integer outside the int64 range is reported as
// runtime.integer_overflow in both modes.
//
// A keyword call with an integer literal argument emits the literal as
// written, so print 007 prints 007.
//
// Comparisons yield 1 or 0. The three-way operator >< yields -1, 0 or 1.
//
// Interpolation
//
// A mix string replaces each $name placeholder with the current value of
// the variable. Placeholders are located left to right and inserted values
// are never expanded again. An undefined placeholder is reported and left
// in the text.
//
// Usage
//
//	ev := executor.New(executor.Options{Logger: logger})
//	output, err := ev.Run(ctx, roots, symbols, errs)
//	fmt.Print(executor.Render(output))
package executor
