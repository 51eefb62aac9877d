package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/thesandybridge/blocktree/block"
	"github.com/thesandybridge/blocktree/search"
)

// handleKeyEvent routes a key press based on the current mode
func (a *App) handleKeyEvent(ev *tcell.EventKey) {
	if a.help.IsVisible() {
		a.help.Toggle()
		return
	}

	switch a.mode {
	case "DRAG":
		a.handleDragKey(ev)
	case "SEARCH":
		a.handleSearchKey(ev)
	default:
		a.handleNormalKey(ev)
	}
}

func (a *App) handleNormalKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlR:
		a.redo()
		return
	case tcell.KeyTab:
		a.indentSelected()
		return
	case tcell.KeyBacktab:
		a.outdentSelected()
		return
	case tcell.KeyEscape:
		a.view.ClearFilter()
		return
	}

	switch ev.Rune() {
	case 'q':
		if a.dirty {
			if err := a.Save(); err != nil {
				a.SetStatus("Save failed: " + err.Error())
				return
			}
		}
		a.quit = true
	case 'j':
		a.view.SelectNext()
	case 'k':
		a.view.SelectPrev()
	case ' ':
		if sel := a.view.Selected(); sel != nil {
			a.inst.ToggleExpand(sel.ID)
		}
	case 'E':
		a.inst.SetExpandAll(true)
	case 'C':
		a.inst.SetExpandAll(false)
	case 'o':
		a.addBlockAfterSelection()
	case 'O':
		a.addBlockInsideSelection()
	case 'x':
		a.deleteSelected()
	case 'd':
		a.startDrag()
	case 'u':
		a.undo()
	case 's':
		if err := a.Save(); err != nil {
			a.SetStatus("Save failed: " + err.Error())
		}
	case '/':
		a.mode = "SEARCH"
		a.search.Activate()
	case '?':
		a.help.Toggle()
	}
}

func (a *App) addBlockAfterSelection() {
	sel := a.view.Selected()
	var err error
	var created *block.Block
	if sel == nil {
		created, err = a.inst.AddBlock("item", "", map[string]any{"text": "New block"})
	} else {
		created, err = a.inst.InsertBlock("item", map[string]any{"text": "New block"}, block.AfterZone(sel.ID))
	}
	if err != nil {
		a.SetStatus("Add failed: " + err.Error())
		return
	}
	a.view.SelectByID(created.ID)
}

func (a *App) addBlockInsideSelection() {
	sel := a.view.Selected()
	if sel == nil {
		return
	}
	created, err := a.inst.AddBlock("item", sel.ID, map[string]any{"text": "New block"})
	if err != nil {
		a.SetStatus("Add failed: " + err.Error())
		return
	}
	a.inst.ToggleExpand(sel.ID)
	a.view.SelectByID(created.ID)
}

func (a *App) deleteSelected() {
	sel := a.view.Selected()
	if sel == nil {
		return
	}
	if err := a.inst.DeleteBlock(sel.ID); err != nil {
		a.SetStatus("Delete failed: " + err.Error())
	}
}

// indentSelected moves the selection into the nearest preceding sibling
// that can own children
func (a *App) indentSelected() {
	sel := a.view.Selected()
	if sel == nil {
		return
	}
	siblings := a.inst.Children(sel.ParentID)
	var prev *block.Block
	for _, sib := range siblings {
		if sib.ID == sel.ID {
			break
		}
		prev = sib
	}
	if prev == nil {
		a.SetStatus("Nothing to indent under")
		return
	}
	if !a.inst.MoveBlock(sel.ID, block.EndZone(prev.ID)) {
		a.SetStatus("Cannot indent here")
		return
	}
	a.view.SelectByID(sel.ID)
}

// outdentSelected moves the selection to just after its parent
func (a *App) outdentSelected() {
	sel := a.view.Selected()
	if sel == nil || sel.ParentID == "" {
		return
	}
	if a.inst.MoveBlock(sel.ID, block.AfterZone(sel.ParentID)) {
		a.view.SelectByID(sel.ID)
	}
}

// startDrag picks up the selected block and arms the collision detector
func (a *App) startDrag() {
	sel := a.view.Selected()
	if sel == nil {
		return
	}
	if !a.inst.StartDrag(sel.ID) {
		a.SetStatus("Cannot drag this block")
		return
	}
	a.mode = "DRAG"
	a.pointerRow = a.view.SelectedIdx()
	a.pointerX = 1
	a.updateDragTarget()
}

func (a *App) handleDragKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		a.dropDraggedBlock()
		return
	case tcell.KeyEscape:
		a.inst.CancelDrag()
		a.mode = "NORMAL"
		a.SetStatus("Drag cancelled")
		return
	}

	switch ev.Rune() {
	case 'j', 'J':
		if a.pointerRow < len(a.view.Rows()) {
			a.pointerRow++
		}
	case 'k', 'K':
		if a.pointerRow > 0 {
			a.pointerRow--
		}
	case 'h':
		a.pointerX -= 2
		if a.pointerX < 0 {
			a.pointerX = 0
		}
	case 'l':
		a.pointerX += 2
	default:
		return
	}
	a.updateDragTarget()
}

// updateDragTarget feeds the virtual pointer through the sticky detector and
// hovers the zone it picks
func (a *App) updateDragTarget() {
	zones := a.view.DropZones(a.screen.GetWidth())
	pointer := a.view.RowPointer(a.pointerRow, a.pointerX)
	if zoneID, ok := a.inst.Collision().Select(pointer, zones); ok {
		a.inst.UpdateDrag(zoneID)
	}
}

func (a *App) dropDraggedBlock() {
	activeID := a.inst.ActiveID()
	blocks := a.inst.EndDrag()
	a.mode = "NORMAL"
	if blocks == nil {
		a.SetStatus("No move")
		return
	}
	a.view.SelectByID(activeID)
	a.SetStatus("Moved")
}

func (a *App) handleSearchKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.search.Deactivate()
		a.view.ClearFilter()
		a.mode = "NORMAL"
		return
	case tcell.KeyEnter:
		// Accept: keep the cursor on the first match, drop the filter
		matches := search.Filter(a.inst.Blocks(), a.search.Query())
		a.search.Deactivate()
		a.view.ClearFilter()
		a.mode = "NORMAL"
		if len(matches) > 0 {
			a.view.SelectByID(matches[0].ID)
		}
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.search.Backspace()
	default:
		if ev.Rune() != 0 {
			a.search.Append(ev.Rune())
		}
	}

	query := a.search.Query()
	if query == "" {
		a.view.ClearFilter()
		a.search.SetResultCount(0)
		return
	}
	matches := search.Filter(a.inst.Blocks(), query)
	a.search.SetResultCount(len(matches))
	a.view.SetFilter(matches)
}
