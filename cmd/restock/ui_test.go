package main

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 18, "short"},
		{"  padded  ", 18, "padded"},
		{"exactly-eighteen-c", 18, "exactly-eighteen-c"},
		{"a-very-long-player-name", 18, "a-very-long-pla..."},
		{"abc", 2, "ab"},
		{"anything", 0, "anything"},
		// Multi-byte names must cut on rune boundaries.
		{"ステラの雑貨店オーナーさん", 10, "ステラの雑貨店..."},
		{"重複した名前", 4, "重..."},
		{"日本語", 3, "日本語"},
	}
	for _, tc := range tests {
		got := truncate(tc.in, tc.n)
		if got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("truncate(%q, %d) produced invalid UTF-8 %q", tc.in, tc.n, got)
		}
	}
}
