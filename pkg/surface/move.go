package surface

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirHome
	DirEnd
)

// Move moves the caret one rune or to either end. With extend set the
// selection grows from the current anchor; otherwise it is cleared.
func (l *Line) Move(dir MoveDir, extend bool) {
	next := l.caret
	switch dir {
	case DirLeft:
		if !extend {
			if start, _, ok := l.Selection(); ok {
				next = start
				break
			}
		}
		next--
	case DirRight:
		if !extend {
			if _, end, ok := l.Selection(); ok {
				next = end
				break
			}
		}
		next++
	case DirHome:
		next = 0
	case DirEnd:
		next = len(l.text)
	}
	next = clamp(next, len(l.text))

	anchor := next
	if extend {
		anchor = l.anchor
	}
	if next == l.caret && anchor == l.anchor {
		return
	}
	l.caret = next
	l.anchor = anchor
	l.version++
}
