package servicerequest

import (
	"strings"
	"unicode/utf8"
)

const (
	MinDescriptionLength = 10
	MaxDescriptionLength = 2000
)

type Description struct {
	value string
}

// NewDescription counts runes so accented Portuguese text is measured fairly.
func NewDescription(s string) (Description, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < MinDescriptionLength {
		return Description{}, ErrDescriptionTooShort
	}
	if n > MaxDescriptionLength {
		return Description{}, ErrDescriptionTooLong
	}
	return Description{value: s}, nil
}

func (d Description) Value() string {
	return d.value
}
