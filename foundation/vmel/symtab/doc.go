// Package symtab implements the vmel symbol table.
//
// Package: symtab
// Title: vmel Symbol Table
// Description: Insertion ordered registry of variables and groups. The
//              parser declares names, the evaluator assigns values.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
package symtab
