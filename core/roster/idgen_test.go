package roster

import (
	"math/rand"
	"strings"
	"testing"
)

func TestGenerateUsername(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		prefix   string
		want     string
	}{
		{name: "empty name", fullName: "", prefix: "hy", want: ""},
		{name: "diacritics stripped and words borrowed", fullName: "Nguyễn Văn A", prefix: "hy", want: "hyvanan"},
		{name: "two words", fullName: "Trần Hùng", prefix: "hy", want: "hyhungt"},
		{name: "long name keeps initials", fullName: "Nguyễn Thị Bích Ngọc", prefix: "hy", want: "hyngocntb"},
		{name: "short single word padded", fullName: "An", prefix: "hy", want: "hyan00"},
		{name: "single word fits", fullName: "Phương", prefix: "hy", want: "hyphuong"},
		{name: "very long last word truncated", fullName: "Supercalifragilisticexpialidocious", prefix: "hy", want: "hysupercalifragilist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateUsername(tt.fullName, tt.prefix); got != tt.want {
				t.Errorf("GenerateUsername(%q, %q) = %q, want %q", tt.fullName, tt.prefix, got, tt.want)
			}
		})
	}
}

// The generator must never emit a username its own validator rejects, and
// lengths always land in [6, 20] for non-empty names.
func TestGenerateUsernameInvariants(t *testing.T) {
	names := []string{
		"Nguyễn Văn A",
		"Đỗ Hữu Phước",
		"Lê Thị Bích Ngọc",
		"Trần Quốc Toản",
		"A B C D E F G H I J K L",
		"Hoàng",
		"X",
		"Phạm Ngũ Lão",
	}
	for _, name := range names {
		uname := GenerateUsername(name, "hy")
		if l := len(uname); l < usernameMinLen || l > usernameMaxLen {
			t.Errorf("GenerateUsername(%q) length = %d, want within [%d, %d]", name, l, usernameMinLen, usernameMaxLen)
		}
		if check := CheckUsername(uname); check != nil {
			t.Errorf("GenerateUsername(%q) = %q rejected by CheckUsername: %s", name, uname, check)
		}
		if uname != strings.ToLower(uname) {
			t.Errorf("GenerateUsername(%q) = %q not lowercased", name, uname)
		}
	}
}

func TestGenerateDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		want     string
	}{
		{name: "empty", fullName: "", want: ""},
		{name: "single word", fullName: "Phương", want: "Phương"},
		{name: "last two words, diacritics kept", fullName: "Nguyễn Văn Ánh", want: "Văn Ánh"},
		{name: "two words", fullName: "Trần Hùng", want: "Trần Hùng"},
		{name: "falls back to final word", fullName: "Aaaaaaaaaaaaaaa Bbbbbbbbbb", want: "Bbbbbbbbbb"},
		{name: "final word hard cut", fullName: "Bbbbbbbbbbbbbbbbbbbbbbbbb", want: "Bbbbbbbbbbbbbbbbbbbb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateDisplayName(tt.fullName)
			if got != tt.want {
				t.Errorf("GenerateDisplayName(%q) = %q, want %q", tt.fullName, got, tt.want)
			}
			if runeLen(got) > displayNameMaxLen {
				t.Errorf("GenerateDisplayName(%q) = %q exceeds %d chars", tt.fullName, got, displayNameMaxLen)
			}
		})
	}
}

func TestGenerateClassName(t *testing.T) {
	if got := GenerateClassName("hy", "1A", 2024); got != "HY_1A_2024" {
		t.Errorf("GenerateClassName() = %q, want %q", got, "HY_1A_2024")
	}
}

func TestTeacherUsername(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		grade  string
		want   string
	}{
		{name: "grade teacher", prefix: "hy", grade: "1A", want: "hygv1a"},
		{name: "general account", prefix: "hy", grade: "", want: "hygv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TeacherUsername(tt.prefix, tt.grade); got != tt.want {
				t.Errorf("TeacherUsername(%q, %q) = %q, want %q", tt.prefix, tt.grade, got, tt.want)
			}
		})
	}
}

func TestGeneratePassword(t *testing.T) {
	defer func() { randIntn = rand.Intn }()

	randIntn = func(n int) int { return 0 }
	if got := GeneratePassword(); got != "1000" {
		t.Errorf("GeneratePassword() = %q, want %q", got, "1000")
	}
	randIntn = func(n int) int { return n - 1 }
	if got := GeneratePassword(); got != "9999" {
		t.Errorf("GeneratePassword() = %q, want %q", got, "9999")
	}

	randIntn = rand.Intn
	for i := 0; i < 100; i++ {
		pwd := GeneratePassword()
		if len(pwd) != 4 || pwd[0] == '0' {
			t.Fatalf("GeneratePassword() = %q, want 4 digits without leading zero", pwd)
		}
	}
}
