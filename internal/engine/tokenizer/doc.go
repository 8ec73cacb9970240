// Package tokenizer turns a structure tree into a seekable, bidirectional
// stream of display tokens.
//
// A Tokenizer is a cursor into that stream. It holds the focused node, a
// small state describing where within that node's token sub-sequence the
// cursor sits, and an explicit stack of ancestor frames back to the root,
// so movement and position queries cost O(depth) rather than O(tree size).
// Tokens are generated on demand as the cursor moves; nothing is stored.
//
// A Tokenizer positioned against one document snapshot can be ported to a
// newer snapshot with PortDoc, which rewrites the cursor across the chain
// of structural changes between the two in O(depth) per change instead of
// re-scanning the stream.
//
// Tokenizers are not safe for concurrent use; the trees they walk are
// immutable and may be shared freely.
package tokenizer
