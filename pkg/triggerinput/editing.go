package triggerinput

import "unicode"

// wordBackward moves the cursor to the start of the previous word.
func (m *Model) wordBackward() {
	if m.pos == 0 || len(m.value) == 0 {
		return
	}
	m.SetCursor(m.wordStartBefore(m.pos))
}

// wordForward moves the cursor past the end of the next word.
func (m *Model) wordForward() {
	if m.pos >= len(m.value) || len(m.value) == 0 {
		return
	}
	m.SetCursor(m.wordEndAfter(m.pos))
}

// deleteWordBackward deletes the word left to the cursor, along with any
// whitespace between it and the cursor.
func (m *Model) deleteWordBackward() {
	if m.pos == 0 || len(m.value) == 0 {
		return
	}

	oldPos := m.pos
	start := m.wordStartBefore(oldPos)
	m.killRing.record(m.value[start:oldPos], killDirectionBackward)
	m.value = cloneConcatRunes(m.value[:start], m.value[oldPos:])
	m.SetCursor(start)
}

// deleteWordForward deletes the word right to the cursor.
func (m *Model) deleteWordForward() {
	if m.pos >= len(m.value) || len(m.value) == 0 {
		return
	}

	end := m.wordEndAfter(m.pos)
	m.killRing.record(m.value[m.pos:end], killDirectionForward)
	m.value = cloneConcatRunes(m.value[:m.pos], m.value[end:])
}

func (m *Model) deleteCharacterBackward() {
	if len(m.value) == 0 || m.pos == 0 {
		return
	}
	m.value = cloneConcatRunes(m.value[:m.pos-1], m.value[m.pos:])
	m.SetCursor(m.pos - 1)
}

func (m *Model) deleteCharacterForward() {
	if len(m.value) == 0 || m.pos >= len(m.value) {
		return
	}
	m.value = cloneConcatRunes(m.value[:m.pos], m.value[m.pos+1:])
}

// deleteBeforeCursor deletes all text before the cursor.
func (m *Model) deleteBeforeCursor() {
	m.killRing.record(m.value[:m.pos], killDirectionBackward)
	m.value = cloneRunes(m.value[m.pos:])
	m.SetCursor(0)
}

// deleteAfterCursor deletes all text after the cursor.
func (m *Model) deleteAfterCursor() {
	m.killRing.record(m.value[m.pos:], killDirectionForward)
	m.value = cloneRunes(m.value[:m.pos])
	m.SetCursor(len(m.value))
}

// insertRunesFromUserInput inserts runes at the cursor, honouring CharLimit.
func (m *Model) insertRunesFromUserInput(v []rune) {
	// Clean up any special characters in the input provided by the
	// clipboard. This avoids bugs due to e.g. tab characters and
	// whatnot.
	paste := m.san().Sanitize(v)
	if len(paste) == 0 {
		return
	}

	if m.CharLimit > 0 {
		availSpace := m.CharLimit - len(m.value)

		// If the char limit's been reached, cancel.
		if availSpace <= 0 {
			return
		}

		// If there's not enough space to paste the whole thing cut the pasted
		// runes down so they'll fit.
		if availSpace < len(paste) {
			paste = paste[:availSpace]
		}
	}

	result := make([]rune, len(m.value)+len(paste))
	copy(result, m.value[:m.pos])
	copy(result[m.pos:], paste)
	copy(result[m.pos+len(paste):], m.value[m.pos:])

	m.value = result
	m.pos += len(paste)
}

// wordStartBefore skips whitespace then a run of non-whitespace to the left
// of pos.
func (m Model) wordStartBefore(pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(m.value[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(m.value[i-1]) {
		i--
	}
	return i
}

// wordEndAfter skips whitespace then a run of non-whitespace to the right
// of pos.
func (m Model) wordEndAfter(pos int) int {
	i := pos
	for i < len(m.value) && unicode.IsSpace(m.value[i]) {
		i++
	}
	for i < len(m.value) && !unicode.IsSpace(m.value[i]) {
		i++
	}
	return i
}
