// utils/validation.go
package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	uuidRegex  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	nonDigits  = regexp.MustCompile(`\D`)
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phoneRegex.MatchString(cleaned)
}

// ParseUUID accepts only the canonical 8-4-4-4-12 hex form, so malformed
// ids never reach the database.
func ParseUUID(s string) (uuid.UUID, bool) {
	if !uuidRegex.MatchString(s) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ValidateNIF checks a Portuguese taxpayer number: nine digits where the last
// is the mod-11 check digit of the first eight weighted 9..2. Separators are
// ignored.
func ValidateNIF(nif string) bool {
	digits := nonDigits.ReplaceAllString(nif, "")
	if len(digits) != 9 {
		return false
	}
	sum := 0
	for i := 0; i < 8; i++ {
		sum += int(digits[i]-'0') * (9 - i)
	}
	check := 11 - sum%11
	if check >= 10 {
		check = 0
	}
	return check == int(digits[8]-'0')
}

// NormalizeNIF strips separators from a NIF.
func NormalizeNIF(nif string) string {
	return nonDigits.ReplaceAllString(nif, "")
}
