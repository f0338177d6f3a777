package generator

import (
	"strings"
	"testing"
)

func TestReadingTimeMinutes(t *testing.T) {
	if got := readingTimeMinutes(0, 200); got != 0 {
		t.Fatalf("empty body reading time = %d, want 0", got)
	}
	if got := readingTimeMinutes(10, 200); got != 1 {
		t.Fatalf("short body reading time = %d, want 1", got)
	}
	if got := readingTimeMinutes(450, 200); got != 3 {
		t.Fatalf("450 words at 200wpm = %d, want 3", got)
	}
	if got := readingTimeMinutes(400, 0); got != 2 {
		t.Fatalf("default wpm fallback = %d, want 2", got)
	}
}

func TestCountWords(t *testing.T) {
	body := []byte("one two   three\nfour\t five")
	if got := countWords(body); got != 5 {
		t.Fatalf("countWords = %d, want 5", got)
	}
	long := []byte(strings.Repeat("word ", 250))
	if got := readingTimeMinutes(countWords(long), 200); got != 2 {
		t.Fatalf("250 words = %d minutes, want 2", got)
	}
}
