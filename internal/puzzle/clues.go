package puzzle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"img2puz/internal/errors"
)

type Clue struct {
	Number    int
	Direction Direction
	Text      string
}

var cluePrefix = regexp.MustCompile(`^(\d+)\s*[.)](\s+|$)`)

// SplitClueBlock splits a block of clue text into one clue per line. Lines
// are trimmed and blank lines are dropped wherever they occur.
func SplitClueBlock(block string) []string {
	block = strings.ReplaceAll(block, "\r\n", "\n")
	block = strings.ReplaceAll(block, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// BindClues pairs the i-th across line with the i-th across slot, and the
// same for down. The result follows the slot order of n.
func BindClues(n *Numbering, acrossBlock, downBlock string) ([]Clue, error) {
	across := SplitClueBlock(acrossBlock)
	down := SplitClueBlock(downBlock)

	if want := n.Count(DirectionAcross); len(across) != want {
		return nil, errors.NewClueCountMismatch(string(DirectionAcross), want, len(across))
	}
	if want := n.Count(DirectionDown); len(down) != want {
		return nil, errors.NewClueCountMismatch(string(DirectionDown), want, len(down))
	}

	clues := make([]Clue, 0, len(n.Slots))
	for _, s := range n.Slots {
		var line string
		if s.Direction == DirectionAcross {
			line, across = across[0], across[1:]
		} else {
			line, down = down[0], down[1:]
		}

		text := stripNumber(line, s.Number)
		if strings.IndexByte(text, 0) >= 0 {
			return nil, errors.NewEncoding(fmt.Sprintf("%d-%s clue", s.Number, s.Direction), "contains NUL byte")
		}
		clues = append(clues, Clue{Number: s.Number, Direction: s.Direction, Text: text})
	}
	return clues, nil
}

// stripNumber removes a "12." or "12)" prefix when it names the slot number.
func stripNumber(line string, number int) string {
	m := cluePrefix.FindStringSubmatchIndex(line)
	if m == nil {
		return line
	}
	num, err := strconv.Atoi(line[m[2]:m[3]])
	if err != nil || num != number || m[1] == len(line) {
		return line
	}
	return line[m[1]:]
}
