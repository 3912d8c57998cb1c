package companion

import "log"

// Interaction turns raw input events into state changes. Cursor coordinates
// are in screen space.
type Interaction struct {
	st        *State
	surf      Surface
	reactions *Reactions
	drowse    *Drowse
	log       *log.Logger

	closed bool
}

// DragStart records where the cursor grabbed the companion.
func (h *Interaction) DragStart(cursorX, cursorY int) {
	h.st.Dragging = true
	h.st.dragOffset = Point{X: cursorX - h.st.Pos.X, Y: cursorY - h.st.Pos.Y}
	h.drowse.Reset()
	h.drowse.Wake()
	h.log.Printf("companion: drag start at (%d,%d)", h.st.Pos.X, h.st.Pos.Y)
}

// DragMove places the companion under the cursor. The position is written
// as-is: no clamping and no change to the wander target.
func (h *Interaction) DragMove(cursorX, cursorY int) {
	if !h.st.Dragging {
		return
	}
	h.st.Pos = Point{X: cursorX - h.st.dragOffset.X, Y: cursorY - h.st.dragOffset.Y}
	h.surf.SetPosition(h.st.Pos.X, h.st.Pos.Y)
}

// DragEnd hands the position back to the motion planner, which steers from
// the drop point toward the last target.
func (h *Interaction) DragEnd() {
	if !h.st.Dragging {
		return
	}
	h.st.Dragging = false
	h.log.Printf("companion: dropped at (%d,%d)", h.st.Pos.X, h.st.Pos.Y)
}

func (h *Interaction) ReactionKey() {
	h.reactions.Trigger()
}

// CloseCombo asks the host loop to terminate.
func (h *Interaction) CloseCombo() {
	h.closed = true
}

func (h *Interaction) Closed() bool {
	return h.closed
}
