package phone

import (
	"errors"
	"strings"
)

// ErrInvalidPhone возвращается, если номер нельзя привести к виду +7XXXXXXXXXX
var ErrInvalidPhone = errors.New("phone: invalid russian phone number")

// NormalizeRU приводит российский номер к виду +7XXXXXXXXXX.
// Нецифровые символы отбрасываются, ведущие 7 или 8 в 11-значном номере срезаются.
func NormalizeRU(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 11 && (digits[0] == '7' || digits[0] == '8'):
		digits = digits[1:]
	case len(digits) == 10:
	default:
		return "", ErrInvalidPhone
	}

	return "+7" + digits, nil
}
