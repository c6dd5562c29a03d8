// Package catalog holds the in-memory catalog of unit summaries and the
// secondary indexes the matcher reads from.
//
// Raw records only enter through NewIndex (or DecodeIndex for index files),
// which validates every unit and port so the core algorithms never see
// loosely-typed data. An Index is an immutable snapshot; reloading is the
// job of a Source and the TTL Cache that owns it.
package catalog
