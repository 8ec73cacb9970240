// Package structure provides the immutable tree of labeled, sized byte
// regions that describes how a binary blob is laid out.
//
// Nodes are never mutated after construction; every edit produces new Node
// values and reuses unaffected subtrees by pointer. That makes a *Node safe
// to share across document snapshots and across any number of concurrent
// readers, and keeps old snapshots cheap to retain.
//
// Display policy lives in Properties as closed enum sets (TitleDisplay,
// ChildrenDisplay, ContentDisplay); consumers dispatch over them with
// exhaustive switches.
package structure
