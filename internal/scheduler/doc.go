// Package scheduler orders a raw set of renames so that it can be applied one
// file at a time without ever renaming onto a file that has yet to move.
//
// The raw set is treated as a graph whose nodes are paths and whose edges are
// pending moves. With at most one move out of and into any path, the graph
// falls apart into simple chains, which end at a vacant path, and simple
// cycles. A chain is emitted from its vacant end backwards and needs no extra
// moves. A cycle is opened by parking one file under a temporary name derived
// from its destination, after which it is an ordinary chain ending at the
// temporary. Each k-cycle therefore costs k+1 renames.
//
// The package works on path strings only and never touches the filesystem.
package scheduler
