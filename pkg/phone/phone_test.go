package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRU(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "international", input: "+7 (912) 345-67-89", want: "+79123456789"},
		{name: "domestic with 8", input: "8 912 345 67 89", want: "+79123456789"},
		{name: "ten digits", input: "9123456789", want: "+79123456789"},
		{name: "leading 7 without plus", input: "79123456789", want: "+79123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeRU(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRU_Invalid(t *testing.T) {
	for _, input := range []string{"", "12345", "19123456789", "+1 912 345 67 890", "abc"} {
		_, err := NormalizeRU(input)
		assert.ErrorIs(t, err, ErrInvalidPhone, input)
	}
}
