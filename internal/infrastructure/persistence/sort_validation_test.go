package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"desc lowercase returns DESC", "desc", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE transactions;--", "DESC"},
		{"whitespace only returns DESC", "   ", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultField string
		expected     string
	}{
		{"empty string returns default", "", "occurred_at", "occurred_at"},
		{"valid column returns column", "total_amount", "occurred_at", "total_amount"},
		{"party name is sortable", "party_name", "occurred_at", "party_name"},
		{"uppercase column is normalized", "QUANTITY", "occurred_at", "quantity"},
		{"whitespace around valid column", "  status  ", "occurred_at", "status"},
		{"unknown column returns default", "muddat", "occurred_at", "occurred_at"},
		{"sql injection attempt returns default", "id; DROP TABLE transactions;--", "occurred_at", "occurred_at"},
		{"column with quotes returns default", "kind'--", "occurred_at", "occurred_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, tt.defaultField))
		})
	}
}
