// Package vmel runs vmel scripts.
//
// Package: vmel
// Title: vmel Scripting Engine
// Description: An Engine runs source text through the lexer, the parser and
//              the evaluator and returns output, symbols and diagnostics
//              in a Result. A Session keeps its symbol table and
//              diagnostic list across calls for interactive use.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
//
// Overview
//
// A vmel program is a sequence of statements:
//
//	$greeting = "Hello"          # assignment
//	$n = (2 + 3) * 4             # integer arithmetic
//	{deploy} "build" "push"      # group declaration
//	println `$greeting, $n`      # keyword call with interpolation
//
// Diagnostics of the program itself are data. Lexical, syntax and runtime
// diagnostics end up in Result.Diagnostics, bounded by
// Options.ErrorCapacity. A Go error is only returned when a call cannot be
// carried out at all, for example for oversized input or a cancelled
// context.
//
// Usage
//
//	engine, err := vmel.NewEngine(vmel.Options{Locale: "de"})
//	if err != nil {
//		return err
//	}
//	result, err := engine.Run(ctx, src)
//	if err != nil {
//		return err
//	}
//	fmt.Print(result.Text())
//	for _, msg := range engine.Messages(result) {
//		fmt.Fprintln(os.Stderr, msg)
//	}
//
// Sessions
//
//	session := engine.NewSession()
//	session.Exec(ctx, `$a = 1`)
//	result, _ := session.Exec(ctx, `println $a + 1`)
package vmel
