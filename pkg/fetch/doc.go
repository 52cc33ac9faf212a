// Package fetch downloads dependency sources to verified local files.
//
// # Overview
//
// [Fetcher.Fetch] takes one declared source and a destination path and
// produces the file at that path, or fails. Only URL sources are fetchable;
// any other source kind fails with UNSUPPORTED_SOURCE so the caller's
// fallback chain can move on.
//
// Downloads never touch the destination directly. Content is streamed to a
// uniquely named temporary file next to the destination, verified against
// the declared sha256 checksum when one is present, and only then renamed
// into place. A failed or cancelled attempt removes the temporary file and
// leaves the destination untouched.
//
// # Retries
//
// Transient failures (network errors, 5xx responses, 429) are retried with
// exponential backoff via [Retry]. Client errors (4xx) and checksum
// mismatches are permanent and returned immediately.
package fetch
