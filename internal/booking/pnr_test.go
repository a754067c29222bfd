package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePNRCode(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"abc123", "ABC123", false},
		{"ABC123", "ABC123", false},
		{"  qf92xz ", "QF92XZ", false},
		{"ABC12", "", true},   // too short
		{"ABC1234", "", true}, // too long
		{"", "", true},
		{"AB-123", "", true}, // punctuation
		{"ABC 12", "", true}, // inner whitespace
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := NormalizePNRCode(tc.raw)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPNRCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
