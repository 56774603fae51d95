/*
Package storage persists environment configurations with BoltDB.

The supervisor core treats persistence as an external concern: the
registry never touches disk itself. EnvironmentStore carries two
buckets, "environments" (name to JSON config) and "meta" (the active
selection), with the usual bbolt discipline: db.View for concurrent
reads, db.Update for serialized writes, JSON values throughout.

LoadRegistry and FlushRegistry bridge the store and the in-memory
registry at the composition root. A fresh store is seeded with the two
stock environments on first load.
*/
package storage
