// Package parser implements the vmel lexer and recursive descent parser.
//
// Package: parser
// Title: vmel Lexer and Parser
// Description: The lexer turns source text into typed tokens with line and
//              column. The parser builds AST nodes from the tokens, declares
//              variables and groups in the symbol table and recovers from
//              syntax errors by skipping to the next statement.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
//
// Grammar:
//
//	program      := statement*
//	statement    := assignment | keyword_stmt | group_block
//	assignment   := IDENTIFIER '=' (expr | array)
//	keyword_stmt := KEYWORD (group_block | expr)
//	group_block  := GROUP STRING*
//	array        := '[' (item (',' item)*)? ']'
//	item         := expr | array
//	expr         := term ((PLUS | MINUS | compare_op) term)*
//	term         := factor ((STAR | SLASH) factor)*
//	factor       := INTEGER | IDENTIFIER | STRING | MIXSTRING | '(' expr ')'
//	compare_op   := '==' | '!=' | '<' | '<=' | '>' | '>=' | '><'
//
// Comparison operators share one left fold with '+' and '-', so
// "1 + 2 == 3" parses as "(1 + 2) == 3" and "1 == 1 + 1" as "(1 == 1) + 1".
package parser
