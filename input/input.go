package input

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/deskpet/prefabs"
)

// Handler receives the companion-level input events.
type Handler interface {
	DragStart(cursorX, cursorY int)
	DragMove(cursorX, cursorY int)
	DragEnd()
	ReactionKey()
	CloseCombo()
}

// Binding is a combo resolved to a physical key.
type Binding struct {
	Combo prefabs.Combo
	Key   ebiten.Key
}

func Bind(c prefabs.Combo) (Binding, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(c.Key)); err != nil {
		return Binding{}, fmt.Errorf("input: bind %s: %w", c, err)
	}
	return Binding{Combo: c, Key: k}, nil
}

// ParseBinding parses and binds a combo string from config.
func ParseBinding(s string) (Binding, error) {
	c, err := prefabs.ParseCombo(s)
	if err != nil {
		return Binding{}, fmt.Errorf("input: %w", err)
	}
	return Bind(c)
}

// JustPressed reports whether the key went down this tick with every required
// modifier held.
func (b Binding) JustPressed() bool {
	if !inpututil.IsKeyJustPressed(b.Key) {
		return false
	}
	if b.Combo.Ctrl && !ebiten.IsKeyPressed(ebiten.KeyControl) {
		return false
	}
	if b.Combo.Alt && !ebiten.IsKeyPressed(ebiten.KeyAlt) {
		return false
	}
	if b.Combo.Shift && !ebiten.IsKeyPressed(ebiten.KeyShift) {
		return false
	}
	return true
}

// Snapshot is one tick of raw input. Cursor coordinates are in screen space.
type Snapshot struct {
	ButtonPressed  bool
	ButtonHeld     bool
	ButtonReleased bool
	CursorX        int
	CursorY        int
	Reaction       bool
	Close          bool
}

// Poller samples ebiten input each tick and routes it to a Handler.
type Poller struct {
	Reaction Binding
	Close    Binding
	origin   func() (int, int)
	dragging bool
}

// NewPoller converts window-local cursor positions to screen space using
// origin, which reports the window's top-left corner.
func NewPoller(reaction, closeCombo Binding, origin func() (int, int)) *Poller {
	return &Poller{Reaction: reaction, Close: closeCombo, origin: origin}
}

func (p *Poller) Sample() Snapshot {
	cx, cy := ebiten.CursorPosition()
	ox, oy := p.origin()
	return Snapshot{
		ButtonPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		ButtonHeld:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		ButtonReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		CursorX:        ox + cx,
		CursorY:        oy + cy,
		Reaction:       p.Reaction.JustPressed(),
		Close:          p.Close.JustPressed(),
	}
}

func (p *Poller) Update(h Handler) {
	p.Route(p.Sample(), h)
}

// Route dispatches a snapshot. Drag events are paired: a move or end is only
// sent after a start.
func (p *Poller) Route(s Snapshot, h Handler) {
	switch {
	case s.ButtonPressed:
		p.dragging = true
		h.DragStart(s.CursorX, s.CursorY)
	case p.dragging && s.ButtonHeld:
		h.DragMove(s.CursorX, s.CursorY)
	case p.dragging && (s.ButtonReleased || !s.ButtonHeld):
		p.dragging = false
		h.DragEnd()
	}

	if s.Close {
		h.CloseCombo()
		return
	}
	if s.Reaction {
		h.ReactionKey()
	}
}

func (p *Poller) Dragging() bool {
	return p.dragging
}
