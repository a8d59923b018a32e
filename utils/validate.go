package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	pincodePattern  = regexp.MustCompile(`^[0-9]{6}$`)
	mobilePattern   = regexp.MustCompile(`^\d{10}$`)
	fullNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateMobile 10 位数字
func ValidateMobile(mobile string) bool {
	return mobilePattern.MatchString(mobile)
}

func ValidatePincode(pincode string) bool {
	return pincodePattern.MatchString(pincode)
}

// ValidateFullName 只允许英文字母和空格，去空白后至少 2 个字符
func ValidateFullName(name string) bool {
	return fullNamePattern.MatchString(name) && MinTrimmedLength(name, 2)
}

// MinTrimmedLength 去掉首尾空白后的字符数是否 >= n
func MinTrimmedLength(value string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) >= n
}

// DigitsOnly 去掉所有非数字字符
func DigitsOnly(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
