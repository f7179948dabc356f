package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language selects which side of a bilingual field is displayed
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

// Default is the language a new session starts in
const Default = Arabic

// Direction is the text direction of a language
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

var supported = []language.Tag{language.Arabic, language.English}

var matcher = language.NewMatcher(supported)

// ParseLanguage accepts "en", "ar" or any BCP 47 tag whose base is one of them
func ParseLanguage(s string) (Language, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", ErrUnsupportedLanguage
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English, nil
	case "ar":
		return Arabic, nil
	}
	return "", ErrUnsupportedLanguage
}

// Negotiate picks the best supported language for an Accept-Language header.
// An empty or unparsable header yields Default.
func Negotiate(acceptLanguage string) Language {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	if supported[index] == language.English {
		return English
	}
	return Arabic
}

// Valid reports whether l is one of the supported languages
func (l Language) Valid() bool {
	return l == English || l == Arabic
}

// Direction returns RTL for Arabic and LTR otherwise
func (l Language) Direction() Direction {
	if l == Arabic {
		return RTL
	}
	return LTR
}

// Toggle switches between the two supported languages
func (l Language) Toggle() Language {
	if l == English {
		return Arabic
	}
	return English
}

// Text is a bilingual string
type Text struct {
	EN string `json:"en" yaml:"en"`
	AR string `json:"ar" yaml:"ar"`
}

// In returns the text for lang, falling back to the other language when empty
func (t Text) In(lang Language) string {
	if lang == Arabic {
		if t.AR != "" {
			return t.AR
		}
		return t.EN
	}
	if t.EN != "" {
		return t.EN
	}
	return t.AR
}

// Exact returns the text for lang with no fallback
func (t Text) Exact(lang Language) string {
	if lang == Arabic {
		return t.AR
	}
	return t.EN
}

// ContainsFold reports whether substr is within s under Unicode case folding
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	folder := cases.Fold()
	return strings.Contains(folder.String(s), folder.String(substr))
}
