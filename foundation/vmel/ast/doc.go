// Package ast defines the vmel syntax tree.
//
// Package: ast
// Title: vmel Abstract Syntax Tree
// Description: Node is a closed set of variants. Every node owns its
//              children; the Store owns the root statements in program
//              order. Visitor and Printer walk the tree.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
package ast
