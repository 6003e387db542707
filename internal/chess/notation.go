package chess

// Notation returns the algebraic text of a completed transition, with "+"
// for check and "#" for mate. Transitions that were not done get the bare
// move text.
func Notation(t MoveTransition) string {
	text := t.Move.String()
	if !t.Status.IsDone() {
		return text
	}
	next := t.To.CurrentPlayer()
	switch {
	case next.InCheckmate():
		return text + "#"
	case next.InCheck():
		return text + "+"
	}
	return text
}
