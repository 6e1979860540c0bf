package pixelart

// Action labels the operation that produced a history snapshot.
type Action string

// Actions recorded by Document operations.
const (
	ActionInit        Action = "initial"
	ActionPaintPixel  Action = "single-cell paint"
	ActionPaintPixels Action = "multi-cell paint"
	ActionFillLine    Action = "line fill"
	ActionFillColumn  Action = "column fill"
	ActionFillGrid    Action = "full-grid fill"
	ActionReset       Action = "grid reset"
	ActionLoadImage   Action = "image load"
)

// Snapshot is an immutable copy of a grid tagged with the action that
// produced it.
type Snapshot struct {
	grid   *Grid
	action Action
}

// Action returns the label of the snapshot.
func (s Snapshot) Action() Action { return s.action }

// Grid returns a deep copy of the snapshot's grid.
func (s Snapshot) Grid() *Grid { return s.grid.Clone() }

// HistoryEntry describes one snapshot for display purposes.
type HistoryEntry struct {
	Index   int    `json:"index"`
	Action  Action `json:"action"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Current bool   `json:"current"`
}

// History is a linear undo/redo log of grid snapshots.
//
// It holds an ordered sequence of snapshots and a cursor into it. The
// sequence always contains at least the initial snapshot and the cursor is
// always a valid index. Registering a state while the cursor is not at the
// end discards every snapshot after the cursor first.
//
// Undo and Redo move the cursor and hand a copy of the snapshot now under it
// to the apply function supplied at construction; History never touches the
// caller's live grid itself.
type History struct {
	states []Snapshot
	cursor int
	apply  func(*Grid)
}

// NewHistory creates a history seeded with a copy of initial, labeled
// ActionInit. apply may be nil.
func NewHistory(initial *Grid, apply func(*Grid)) *History {
	return &History{
		states: []Snapshot{{grid: initial.Clone(), action: ActionInit}},
		apply:  apply,
	}
}

// Register records a copy of g as the newest state and moves the cursor to
// it. States after the cursor are discarded first.
func (h *History) Register(g *Grid, action Action) {
	clear(h.states[h.cursor+1:])
	h.states = append(h.states[:h.cursor+1], Snapshot{grid: g.Clone(), action: action})
	h.cursor = len(h.states) - 1
}

// CanUndo reports whether there is a state before the cursor.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether there is a state after the cursor.
func (h *History) CanRedo() bool { return h.cursor < len(h.states)-1 }

// Undo steps back one state and applies it. It returns false, doing nothing,
// when already at the initial state.
func (h *History) Undo() bool {
	if !h.CanUndo() {
		return false
	}
	h.cursor--
	h.applyCurrent()
	return true
}

// Redo steps forward one state and applies it. It returns false, doing
// nothing, when already at the newest state.
func (h *History) Redo() bool {
	if !h.CanRedo() {
		return false
	}
	h.cursor++
	h.applyCurrent()
	return true
}

// Compact drops every snapshot except the current one, which becomes the
// only entry. Undo and redo are unavailable afterwards until new states are
// registered.
func (h *History) Compact() {
	h.states = []Snapshot{h.states[h.cursor]}
	h.cursor = 0
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.states) }

// Cursor returns the index of the current snapshot.
func (h *History) Cursor() int { return h.cursor }

// Current returns the snapshot under the cursor.
func (h *History) Current() Snapshot { return h.states[h.cursor] }

// Entries lists the stored snapshots oldest first.
func (h *History) Entries() []HistoryEntry {
	entries := make([]HistoryEntry, len(h.states))
	for i, s := range h.states {
		entries[i] = HistoryEntry{
			Index:   i,
			Action:  s.action,
			Width:   s.grid.Width(),
			Height:  s.grid.Height(),
			Current: i == h.cursor,
		}
	}
	return entries
}

func (h *History) applyCurrent() {
	if h.apply != nil {
		h.apply(h.states[h.cursor].Grid())
	}
}
