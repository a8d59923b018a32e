package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		in    string
		want  string
	}{
		{"email spaces and case", FieldEmail, " Asha@Example.COM ", "asha@example.com"},
		{"email markup", FieldEmail, "<a>@b.co", "a@b.co"},
		{"mobile formatting kept", FieldMobile, "+91 98765-43210", "+91 98765-43210"},
		{"mobile letters dropped", FieldMobile, "98a76b5", "98765"},
		{"mobile length cap", FieldMobile, "12345678901234567890", "123456789012345"},
		{"name digits dropped", FieldFullName, "Asha  Rao2", "Asha Rao"},
		{"name apostrophe", FieldFullName, "D'Souza", "D'Souza"},
		{"password untouched", FieldPassword, " <pa ss> ", " <pa ss> "},
		{"input control chars", FieldCity, "Pu\x00ne<b>", "Puneb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize(tt.field, tt.in))
		})
	}
}
