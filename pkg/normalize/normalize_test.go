// Copyright (c) 2026 VidShare. All rights reserved.

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Monuyadav-01/vidoeshareapp/pkg/normalize"
)

/*
TestUsername verifies trimming, case folding, and Unicode compatibility folding.
*/
func TestUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase_passthrough", "alice", "alice"},
		{"uppercase_folded", "AlIcE", "alice"},
		{"whitespace_trimmed", "  alice \n", "alice"},
		{"fullwidth_folded", "ａｌｉｃｅ", "alice"},
		{"digits_preserved", "Alice01", "alice01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Username(tt.input))
		})
	}
}

/*
TestEmail verifies that emails are lowercased but otherwise untouched.
*/
func TestEmail(t *testing.T) {
	assert.Equal(t, "alice@x.com", normalize.Email(" Alice@X.COM "))
	assert.Equal(t, "a+tag@x.com", normalize.Email("A+tag@x.com"))
}
