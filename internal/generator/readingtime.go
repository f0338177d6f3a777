package generator

import "strings"

const defaultWordsPerMinute = 200

// countWords approximates the word count of a Markdown body. Fenced code
// blocks are counted too; for reading-time estimates the difference is noise.
func countWords(body []byte) int {
	return len(strings.Fields(string(body)))
}

// readingTimeMinutes converts a word count into whole minutes, rounding up.
// Any non-empty body reads for at least one minute.
func readingTimeMinutes(words, wordsPerMinute int) int {
	if words <= 0 {
		return 0
	}
	if wordsPerMinute <= 0 {
		wordsPerMinute = defaultWordsPerMinute
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
