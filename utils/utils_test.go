package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRosterNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "7", "7"},
		{"surrounding space", "  12 ", "12"},
		{"spreadsheet float", "7.0", "7"},
		{"full-width digits", "１２３", "123"},
		{"leading zero kept", "07", "07"},
		{"fractional kept", "7.5", "7.5"},
		{"text kept", "A-12", "A-12"},
		{"trailing dot kept", "7.", "7."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRosterNumber(tt.in))
		})
	}
}
