// Package cxxast defines the external AST/type collaborator contract
// the indexing core consumes: a fully-resolved, queryable frozen tree
// of declarations, types, and expressions (spec.md §6's "AST
// collaborator API"). The core never parses source into this tree; it
// is built once by an external frontend (here, decoded from a JSON AST
// dump) and then only read.
package cxxast
