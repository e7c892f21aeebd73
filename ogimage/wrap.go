package ogimage

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Wrap greedily packs the words of text into lines no wider than maxWidth
// pixels when drawn with face. A word that is wider than maxWidth on its own
// gets a line to itself. Text without words is returned unchanged as the
// only line.
func Wrap(text string, maxWidth int, face font.Face) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	limit := fixed.I(maxWidth)
	var lines []string
	for i := 0; i < len(words); {
		// The first word of a line is always taken, so i advances every pass.
		line := words[i]
		i++
		for i < len(words) {
			candidate := line + " " + words[i]
			if font.MeasureString(face, candidate) > limit {
				break
			}
			line = candidate
			i++
		}
		lines = append(lines, line)
	}
	return lines
}
