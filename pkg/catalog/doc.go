// Package catalog defines the SafeTube media catalog as seen by maintenance jobs:
// the video records that reference files under the media root, and the key/value
// settings table that carries operator preferences such as retention_days.
//
// # Layers
//
//  1. Types - Video and Setting rows
//  2. Store - read access to settings and expired videos, plus write transactions
//  3. Storage backends - see package catalog/storage (SQLite)
//
// # Connections
//
// Jobs do not hold a long-lived store. They ask an Opener for a fresh Store around
// each logical phase and close it when the phase ends:
//
//	store, err := opener.Open(ctx)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	value, found, err := store.Setting(ctx, catalog.RetentionDaysKey)
//
// # Schema
//
// The catalog tables are owned by the SafeTube application. Nothing in this package
// creates or migrates them.
package catalog
