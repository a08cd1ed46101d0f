package triggerinput

const killRingMax = 30

type killDirection int

const (
	killDirectionUnknown killDirection = iota
	killDirectionForward
	killDirectionBackward
)

// killRing stores recently killed text for yank and yank-pop. Consecutive
// kills in the same direction grow the newest entry instead of adding one.
type killRing struct {
	// ring[0] is the most recent kill.
	ring          [][]rune
	index         int
	lastDirection killDirection
	lastWasKill   bool

	// Bounds of the last yank in the buffer, for yank-pop.
	yankActive bool
	yankStart  int
	yankEnd    int
}

func (kr *killRing) record(killed []rune, direction killDirection) {
	if len(killed) == 0 {
		kr.lastWasKill = false
		kr.lastDirection = direction
		kr.yankActive = false
		return
	}

	cleaned := cloneRunes(killed)
	if kr.lastWasKill && direction == kr.lastDirection && len(kr.ring) > 0 {
		if direction == killDirectionForward {
			kr.ring[0] = append(kr.ring[0], cleaned...)
		} else {
			kr.ring[0] = append(cleaned, kr.ring[0]...)
		}
	} else {
		kr.ring = append([][]rune{cleaned}, kr.ring...)
		if len(kr.ring) > killRingMax {
			kr.ring = kr.ring[:killRingMax]
		}
		kr.index = 0
	}

	kr.lastWasKill = true
	kr.lastDirection = direction
	kr.yankActive = false
}

// reset ends any run of kills or yanks.
func (kr *killRing) reset() {
	kr.lastWasKill = false
	kr.yankActive = false
}

// yank inserts the most recent kill at the cursor.
func (m *Model) yank() {
	kr := &m.killRing
	if len(kr.ring) == 0 {
		return
	}

	before := m.pos
	m.insertRunesFromUserInput(cloneRunes(kr.ring[0]))
	kr.yankStart = before
	kr.yankEnd = m.pos
	kr.index = 0
	kr.yankActive = true
	kr.lastWasKill = false
}

// yankPop replaces the text of the previous yank with the next older kill.
func (m *Model) yankPop() {
	kr := &m.killRing
	if !kr.yankActive || len(kr.ring) < 2 {
		return
	}

	kr.index = (kr.index + 1) % len(kr.ring)

	start := clamp(kr.yankStart, 0, len(m.value))
	end := clamp(kr.yankEnd, start, len(m.value))
	replacement := cloneRunes(kr.ring[kr.index])

	m.value = cloneConcatRunes(cloneConcatRunes(m.value[:start], replacement), m.value[end:])
	m.SetCursor(start + len(replacement))

	kr.yankStart = start
	kr.yankEnd = start + len(replacement)
	kr.lastWasKill = false
}
