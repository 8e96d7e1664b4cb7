package canvas

// history is a linear undo log of committed strokes. Entries before step are
// visible on the canvas; entries from step onwards form the redo stack, most
// recently undone first.
type history struct {
	strokes []Stroke
	step    int
}

func (h *history) commit(s Stroke) {
	h.strokes = append(h.strokes[:h.step], s)
	h.step++
}

func (h *history) undo() bool {
	if h.step == 0 {
		return false
	}
	h.step--
	return true
}

func (h *history) redo() bool {
	if h.step >= len(h.strokes) {
		return false
	}
	h.step++
	return true
}

func (h *history) committed() []Stroke { return h.strokes[:h.step] }

func (h *history) canUndo() bool { return h.step > 0 }

func (h *history) canRedo() bool { return h.step < len(h.strokes) }

func (h *history) reset() {
	h.strokes = nil
	h.step = 0
}
