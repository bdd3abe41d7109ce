// Package naming parses and renders sequenced file names.
//
// A sequenced file is named <stem>[.<tag>].<NNNN>.<suffix>, where the index is
// zero-padded to at least four digits. The tag marks a file as belonging to a
// distinguished subset (for example "selected" files) and is recognised purely
// by position: a name is tagged when its third-from-last dot-separated segment
// equals the tag literal, whatever the rest of the name says. Foreign files
// therefore keep their tag when they are folded into another directory.
//
// Parsing is pure string work; nothing in this package touches the filesystem.
package naming
