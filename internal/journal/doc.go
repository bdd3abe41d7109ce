// Package journal records fseq runs in a SQLite database.
//
// Each run stores the operation, the directory or file it targeted, and every
// scheduled action together with its outcome. When a run is interrupted the
// recorded plan shows which renames were applied and which temporaries are
// still parked, so the rest can be finished by hand.
package journal
