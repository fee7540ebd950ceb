// Package fix proposes and applies quick fixes for located diagnostics.
//
// Rules are evaluated independently against the lowercased diagnostic
// message: every rule whose trigger matches and whose build succeeds
// contributes a fix, so one diagnostic can offer several repairs. This is
// deliberately asymmetric with the locator, which keeps only its first
// matching location bucket.
//
// Fix construction is a pure function of document and diagnostic, but
// applying a fix twice is not idempotent; callers re-run diagnostics before
// offering fixes again.
package fix
