package onboarding

import (
	"strings"
	"unicode"
)

// SanitizeEmail 去掉所有空白并转小写
func SanitizeEmail(value string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '<' || r == '>' {
			return -1
		}
		return r
	}, value))
}

// SanitizeMobile 只保留数字、空格、+ 和 -，最长 15 个字符
func SanitizeMobile(value string) string {
	var b strings.Builder
	for _, r := range value {
		if b.Len() >= 15 {
			break
		}
		if unicode.IsDigit(r) || r == ' ' || r == '+' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeName 只保留字母、空格、点、撇号和连字符，折叠连续空格
func SanitizeName(value string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), r == '.', r == '\'', r == '-':
			return r
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, value)
	return collapseSpaces(cleaned)
}

// SanitizeInput 通用文本：去掉控制字符和尖括号
func SanitizeInput(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == '<' || r == '>' {
			return -1
		}
		return r
	}, value)
}

func collapseSpaces(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	prevSpace := false
	for _, r := range value {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sanitize(field Field, value string) string {
	switch field {
	case FieldEmail:
		return SanitizeEmail(value)
	case FieldPassword:
		return value
	case FieldMobile:
		return SanitizeMobile(value)
	case FieldFullName:
		return SanitizeName(value)
	default:
		return SanitizeInput(value)
	}
}
