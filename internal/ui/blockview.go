package ui

import (
	"github.com/thesandybridge/blocktree/block"
	"github.com/thesandybridge/blocktree/collision"
	"github.com/thesandybridge/blocktree/tree"
)

const indentWidth = 2

// Row is one visible line of the block view
type Row struct {
	Block       *block.Block
	Depth       int
	HasChildren bool
	Expanded    bool
}

// BlockView manages the display and navigation of a block tree instance.
// During a drag it renders the instance's preview state, so the rows follow
// the debounced prospective reorder rather than the committed tree.
type BlockView struct {
	inst           *tree.Instance
	selectedIdx    int
	viewportOffset int

	// filter restricts the view to matching block ids (search results);
	// nil means no filter
	filter map[string]bool
}

// NewBlockView creates a view over a tree instance
func NewBlockView(inst *tree.Instance) *BlockView {
	return &BlockView{inst: inst}
}

// Rows returns the currently visible rows: the preview-aware flat order
// with collapsed subtrees and filtered-out blocks hidden
func (v *BlockView) Rows() []Row {
	blocks := v.inst.EffectiveBlocks()
	expanded := v.inst.ExpandedMap()

	byID := make(map[string]*block.Block, len(blocks))
	childCount := make(map[string]int, len(blocks))
	for _, b := range blocks {
		byID[b.ID] = b
		childCount[b.ParentID]++
	}

	var rows []Row
	for _, b := range blocks {
		if v.filter != nil && !v.filter[b.ID] {
			continue
		}
		if hiddenByCollapse(b, byID, expanded) {
			continue
		}
		rows = append(rows, Row{
			Block:       b,
			Depth:       blockDepth(b, byID),
			HasChildren: childCount[b.ID] > 0,
			Expanded:    expanded[b.ID],
		})
	}
	return rows
}

func hiddenByCollapse(b *block.Block, byID map[string]*block.Block, expanded map[string]bool) bool {
	seen := map[string]bool{b.ID: true}
	for cur := byID[b.ParentID]; cur != nil; cur = byID[cur.ParentID] {
		if seen[cur.ID] {
			return false
		}
		seen[cur.ID] = true
		if !expanded[cur.ID] {
			return true
		}
	}
	return false
}

func blockDepth(b *block.Block, byID map[string]*block.Block) int {
	depth := 0
	seen := map[string]bool{b.ID: true}
	for cur := byID[b.ParentID]; cur != nil; cur = byID[cur.ParentID] {
		if seen[cur.ID] {
			break
		}
		seen[cur.ID] = true
		depth++
	}
	return depth
}

// SelectNext moves selection down
func (v *BlockView) SelectNext() {
	if v.selectedIdx < len(v.Rows())-1 {
		v.selectedIdx++
	}
}

// SelectPrev moves selection up
func (v *BlockView) SelectPrev() {
	if v.selectedIdx > 0 {
		v.selectedIdx--
	}
}

// SelectedIdx returns the index of the selected row
func (v *BlockView) SelectedIdx() int {
	return v.selectedIdx
}

// SetSelectedIdx moves selection to a specific row, clamped to range
func (v *BlockView) SetSelectedIdx(idx int) {
	rows := v.Rows()
	if idx >= len(rows) {
		idx = len(rows) - 1
	}
	if idx < 0 {
		idx = 0
	}
	v.selectedIdx = idx
}

// Selected returns the block under the cursor, or nil when the view is empty
func (v *BlockView) Selected() *block.Block {
	rows := v.Rows()
	if len(rows) == 0 {
		return nil
	}
	if v.selectedIdx >= len(rows) {
		v.selectedIdx = len(rows) - 1
	}
	return rows[v.selectedIdx].Block
}

// SelectByID moves the cursor to the row showing the given block id
func (v *BlockView) SelectByID(id string) {
	for i, row := range v.Rows() {
		if row.Block.ID == id {
			v.selectedIdx = i
			return
		}
	}
}

// SetFilter restricts the view to the given blocks (search results)
func (v *BlockView) SetFilter(matches []*block.Block) {
	v.filter = make(map[string]bool, len(matches))
	for _, b := range matches {
		v.filter[b.ID] = true
	}
	v.selectedIdx = 0
}

// ClearFilter removes the search restriction
func (v *BlockView) ClearFilter() {
	v.filter = nil
}

// DropZones builds the candidate drop targets for the current rows, in row
// coordinates: each row owns the vertical band [i, i+1). Before-zones cover
// the top half and after-zones the bottom half; expanded containers add an
// indented into-zone that competes with the after-zone on the horizontal
// axis. A root-end zone trails the last row.
func (v *BlockView) DropZones(width int) []collision.Zone {
	rows := v.Rows()
	var zones []collision.Zone

	for i, row := range rows {
		indent := float64(row.Depth * indentWidth)
		span := float64(width) - indent
		if span < 1 {
			span = 1
		}
		y := float64(i)

		zones = append(zones,
			collision.Zone{
				ID:   block.BeforeZone(row.Block.ID),
				Rect: collision.Rect{X: indent, Y: y, Width: span, Height: 0.5},
			},
			collision.Zone{
				ID:   block.AfterZone(row.Block.ID),
				Rect: collision.Rect{X: indent, Y: y + 0.5, Width: span, Height: 0.5},
			},
		)
		if row.HasChildren && row.Expanded {
			zones = append(zones, collision.Zone{
				ID:   block.IntoZone(row.Block.ID),
				Rect: collision.Rect{X: indent + indentWidth, Y: y + 0.5, Width: span - indentWidth, Height: 0.5},
			})
		}
	}

	zones = append(zones, collision.Zone{
		ID:   block.RootEndZone(),
		Rect: collision.Rect{X: 0, Y: float64(len(rows)), Width: float64(width), Height: 0.5},
	})
	return zones
}

// RowPointer returns the virtual pointer rect for a row index, used to feed
// keyboard-driven drags through the collision detector
func (v *BlockView) RowPointer(rowIdx int, horizontal float64) collision.Rect {
	return collision.Rect{X: horizontal, Y: float64(rowIdx) + 0.25, Width: 1, Height: 0.5}
}

// ensureVisible scrolls the viewport so the selection stays on screen
func (v *BlockView) ensureVisible(visibleLines int) {
	if v.selectedIdx < v.viewportOffset {
		v.viewportOffset = v.selectedIdx
	}
	if v.selectedIdx >= v.viewportOffset+visibleLines {
		v.viewportOffset = v.selectedIdx - visibleLines + 1
	}
	if v.viewportOffset < 0 {
		v.viewportOffset = 0
	}
}

// Render draws the visible rows between startY and endY (exclusive)
func (v *BlockView) Render(s *Screen, startY, endY int) {
	rows := v.Rows()
	visibleLines := endY - startY
	if visibleLines <= 0 {
		return
	}
	if v.selectedIdx >= len(rows) && len(rows) > 0 {
		v.selectedIdx = len(rows) - 1
	}
	v.ensureVisible(visibleLines)

	activeID := v.inst.ActiveID()
	dropAnchor, dropAfter := v.dropMarker()

	width := s.GetWidth()
	y := startY
	for i := v.viewportOffset; i < len(rows) && y < endY; i++ {
		row := rows[i]
		x := row.Depth * indentWidth

		arrow := "•"
		arrowStyle := s.LeafArrowStyle()
		if row.HasChildren {
			if row.Expanded {
				arrow = "▼"
				arrowStyle = s.ExpandedArrowStyle()
			} else {
				arrow = "▶"
				arrowStyle = s.CollapsedArrowStyle()
			}
		}

		textStyle := s.BlockNormalStyle()
		switch {
		case row.Block.ID == activeID:
			textStyle = s.DragActiveStyle()
		case i == v.selectedIdx:
			textStyle = s.BlockSelectedStyle()
		}

		if row.Block.ID == dropAnchor {
			markerY := y
			if dropAfter {
				// The indicator hugs the edge the block would land on.
				markerY = y + 1
			}
			if markerY >= startY && markerY < endY {
				s.DrawString(0, markerY, "»", s.DropIndicatorStyle())
			}
		}

		s.DrawString(x, y, arrow, arrowStyle)
		s.DrawStringLimited(x+2, y, blockText(row.Block), width-x-2, textStyle)
		y++
	}
}

// dropMarker resolves the current hover zone to the row it anchors on and
// whether the marker sits below that row
func (v *BlockView) dropMarker() (anchor string, after bool) {
	zone := v.inst.HoverZone()
	if zone == "" {
		return "", false
	}
	z, err := block.ParseDropZone(zone)
	if err != nil {
		return "", false
	}
	switch z.Mode {
	case block.ZoneBefore:
		return z.Anchor, false
	case block.ZoneAfter, block.ZoneInto, block.ZoneEnd:
		return z.Anchor, true
	default:
		return "", false
	}
}

// blockText extracts the displayable text of a block, falling back to its
// type tag for payload-less blocks
func blockText(b *block.Block) string {
	if b.Payload != nil {
		if text, ok := b.Payload["text"].(string); ok && text != "" {
			return text
		}
		if title, ok := b.Payload["title"].(string); ok && title != "" {
			return title
		}
	}
	return "(" + b.Type + ")"
}
