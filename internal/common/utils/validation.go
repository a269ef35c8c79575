package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field error labels shown inline next to registration inputs
const (
	MsgRequired         = "Required field"
	MsgLettersOnly      = "Letters only"
	MsgMiddleInitial    = "Format: 'A.'"
	MsgInvalidChars     = "Invalid characters"
	MsgState            = "Letters only or 'NY' format"
	MsgZip              = "Must have at least 5 digits"
	MsgPhone            = "Minimum 9 digits"
	MsgEmail            = "Invalid email format"
	MsgPasswordLength   = "Minimum 8 characters"
	MsgPasswordStrength = "Requires: upper, lower, digit and symbol"
	MsgPasswordMismatch = "Passwords do not match"
)

// MinPasswordLength is the minimum number of characters in a password
const MinPasswordLength = 8

var (
	// EmailRegex validates email addresses
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,6}$`)

	// NameRegex validates person and city names: letters, accented vowels, ñ and whitespace
	NameRegex = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]+$`)

	// MiddleInitialRegex validates a single letter followed by a period
	MiddleInitialRegex = regexp.MustCompile(`^[a-zA-Z]\.$`)

	// StreetRegex validates street addresses
	StreetRegex = regexp.MustCompile(`^[a-zA-Z0-9áéíóúÁÉÍÓÚñÑ.,\-/ºª ]+$`)

	// StateRegex validates a state name or a two letter state code
	StateRegex = regexp.MustCompile(`^(?:[a-zA-ZáéíóúÁÉÍÓÚñÑ ]+|[A-Z]{2})$`)

	// ZipRegex validates a five digit zip code
	ZipRegex = regexp.MustCompile(`^\d{5}$`)

	// PhoneRegex validates phone numbers of at least nine digits
	PhoneRegex = regexp.MustCompile(`^\d{9,}$`)
)

// isBlank treats whitespace-only input as empty
func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func matchOrRequired(value string, re *regexp.Regexp, msg string) string {
	if isBlank(value) {
		return MsgRequired
	}
	if !re.MatchString(value) {
		return msg
	}
	return ""
}

// ValidateName validates first name, last name and city
func ValidateName(value string) string {
	return matchOrRequired(value, NameRegex, MsgLettersOnly)
}

// ValidateMiddleInitial validates a middle initial such as "A."
func ValidateMiddleInitial(value string) string {
	return matchOrRequired(value, MiddleInitialRegex, MsgMiddleInitial)
}

// ValidateStreet validates a street address
func ValidateStreet(value string) string {
	return matchOrRequired(value, StreetRegex, MsgInvalidChars)
}

// ValidateState validates a state name or code
func ValidateState(value string) string {
	return matchOrRequired(value, StateRegex, MsgState)
}

// ValidateZip validates a zip code
func ValidateZip(value string) string {
	return matchOrRequired(value, ZipRegex, MsgZip)
}

// ValidatePhone validates a phone number
func ValidatePhone(value string) string {
	return matchOrRequired(value, PhoneRegex, MsgPhone)
}

// ValidateEmail validates an email address
func ValidateEmail(value string) string {
	return matchOrRequired(value, EmailRegex, MsgEmail)
}

// ValidatePassword checks length first, then character classes
func ValidatePassword(value string) string {
	if utf8.RuneCountInString(value) < MinPasswordLength {
		return MsgPasswordLength
	}

	var upper, lower, digit, symbol bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsSpace(r):
			symbol = true
		}
	}

	if !upper || !lower || !digit || !symbol {
		return MsgPasswordStrength
	}
	return ""
}

// ValidateRepeatPassword checks the confirmation against the current password
func ValidateRepeatPassword(value, password string) string {
	if value == "" || value != password {
		return MsgPasswordMismatch
	}
	return ""
}
