// Package driver runs the formatter, the validator-backed checker and the
// fix applier over files and directories on behalf of the CLI.
//
// It owns the batch concerns the pure core stays free of: file collection,
// parallelism, progress events, disk writes and the check-result cache.
package driver
