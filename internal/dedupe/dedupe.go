package dedupe

// Package dedupe provides a shared singleflight group used to deduplicate
// concurrent snapshot reads. Snapshot rows are immutable once written, so
// collapsing concurrent fetches for the same (game, turn) key is safe and
// keeps SQLite contention down when spectators poll after a resolution.

import "golang.org/x/sync/singleflight"

// SnapshotGroup deduplicates snapshot fetches keyed by "gameID:turn".
var SnapshotGroup singleflight.Group
