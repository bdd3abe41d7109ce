// Package scan classifies the files of one managed directory.
//
// A directory D with base name B and tag T holds two sequences: untagged files
// named B.NNNN.ext and tagged files named B.T.NNNN.ext. Classify sorts every
// regular file of D into one of two buckets by the tag membership rule, and
// within a bucket into numbered files (matching the bucket's naming
// convention) and rogue files (everything else). TokenMap is the richer view
// used for age ordering: it parses each file into a models.FileToken and
// attaches its modification time.
//
// Listing goes through the FS interface so tests can substitute an in-memory
// view. Subdirectories are always skipped and the scan is never recursive.
package scan
