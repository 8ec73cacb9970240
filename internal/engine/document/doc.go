// Package document links structure-tree snapshots into an append-only
// version chain and describes the structural edits between them.
//
// A Document is one immutable snapshot: a root node plus a link to the
// predecessor snapshot and the Change that produced it. Applying a Change
// rebuilds only the spine from the edited node to the root; everything
// else is shared with the previous snapshot by pointer, so old snapshots
// stay valid and cheap to keep around.
package document
