// Package indexer queries torrent indexers for candidate releases.
//
// Prowlarr's JSON search API is the default backend; a Torznab RSS backend
// serves Jackett and per-indexer feeds. Both return Hit values whose loosely
// typed fields (age, seeders) keep their raw form for the filter to judge.
package indexer
