// Copyright (c) 2026 VidShare. All rights reserved.

// Package normalize provides canonical text forms for identity fields.
//
// # Overview
//
// Usernames and email addresses are compared and stored case-insensitively.
// Applying a single normal form at the boundary means every lookup, uniqueness
// constraint, and equality check operates on identical bytes.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Username returns the canonical storage form of a username: trimmed,
// Unicode NFKC-folded, and lowercased.
//
// NFKC collapses compatibility variants (full-width letters, ligatures) so
// visually identical names cannot register as distinct accounts.
func Username(raw string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(raw)))
}

// Email returns the canonical storage form of an email address.
// Only case and surrounding whitespace are normalized; the local part is
// otherwise preserved byte-for-byte.
func Email(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
