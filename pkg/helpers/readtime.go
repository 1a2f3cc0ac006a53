package helpers

import (
	"fmt"
	"strings"
)

// readingSpeed is the assumed words-per-minute rate for the read-time label.
const readingSpeed = 200

// ReadTime estimates reading duration from word count, never below one
// minute. 400 words yields "2 min read".
func ReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + readingSpeed - 1) / readingSpeed
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
