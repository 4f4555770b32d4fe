// Package store persists assembled games in SQLite.
//
// The Store manages database connections, schema initialization, and
// the queries the CLI runs over ingested seasons. Each game is written
// in its own transaction so a failed game never leaves partial rows
// behind, and re-ingesting a game replaces its previous rows.
//
// Schema changes bump the version in schema.go; users re-ingest after
// deleting the database to adopt the new schema.
package store
