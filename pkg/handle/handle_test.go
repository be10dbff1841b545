// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package handle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haiphamduc/streamora/pkg/handle"
)

/*
TestCanonical verifies the username normalization pipeline.
*/
func TestCanonical(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already_canonical", "alice", "alice"},
		{"uppercase", "Alice", "alice"},
		{"mixed_case", "AlIcE_99", "alice_99"},
		{"accented", "Álice", "alice"},
		{"surrounding_whitespace", "  alice  ", "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, handle.Canonical(tt.input))
		})
	}
}

/*
TestIsValid checks the canonical handle format rule.
*/
func TestIsValid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		isValid bool
	}{
		{"simple", "alice", true},
		{"with_digits", "alice99", true},
		{"with_separators", "alice_the-great", true},
		{"too_short", "al", false},
		{"uppercase_rejected", "Alice", false},
		{"spaces_rejected", "a lice", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValid, handle.IsValid(tt.input))
		})
	}
}
