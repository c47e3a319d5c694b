package identifier

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	serialCodeLength = 3
	serialPadding    = "X"
)

// SerialCode normalises a customer code to the three-character serial prefix:
// the first three characters upper-cased, right-padded with X.
func SerialCode(customerCode string) string {
	code := strings.TrimSpace(customerCode)
	if utf8.RuneCountInString(code) > serialCodeLength {
		code = string([]rune(code)[:serialCodeLength])
	}
	code = strings.ToUpper(code)
	if n := utf8.RuneCountInString(code); n < serialCodeLength {
		code += strings.Repeat(serialPadding, serialCodeLength-n)
	}
	return code
}

// SerialSequenceKey names the per-customer sequence state row.
func SerialSequenceKey(customerCode string) string {
	return "serial:" + SerialCode(customerCode)
}

// NextSerial returns the serial that follows lastSequence together with the
// sequence number it consumed. A nil lastSequence starts at 1. The sequence is
// per customer and is never reset by the year.
func NextSerial(customerCode string, year int, lastSequence *int) (string, int) {
	next := 1
	if lastSequence != nil {
		next = *lastSequence + 1
	}

	yy := year % 100
	if yy < 0 {
		yy = -yy
	}

	return fmt.Sprintf("%s%02d%05d", SerialCode(customerCode), yy, next), next
}

// AllocateSerial is NextSerial without the consumed sequence.
func AllocateSerial(customerCode string, year int, lastSequence *int) string {
	serial, _ := NextSerial(customerCode, year, lastSequence)
	return serial
}
