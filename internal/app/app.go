package app

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gdamore/tcell/v2"

	"github.com/thesandybridge/blocktree/block"
	"github.com/thesandybridge/blocktree/history"
	"github.com/thesandybridge/blocktree/internal/config"
	"github.com/thesandybridge/blocktree/internal/storage"
	"github.com/thesandybridge/blocktree/internal/theme"
	"github.com/thesandybridge/blocktree/internal/ui"
	"github.com/thesandybridge/blocktree/tree"
)

const historyLimit = 100

// App is the main application controller. It owns the tree instance and
// wires keyboard input, rendering, history and persistence around it.
type App struct {
	screen  *ui.Screen
	inst    *tree.Instance
	view    *ui.BlockView
	search  *ui.SearchBar
	help    *ui.HelpScreen
	store   *storage.JSONStore
	backups *storage.BackupManager
	cfg     *config.Config

	reducer  history.Reducer[[]*block.Block]
	snapshot *history.State[[]*block.Block]

	title        string
	strategy     block.Strategy
	statusMsg    string
	statusTime   time.Time
	dirty        bool
	autoSaveTime time.Time
	quit         bool
	debugMode    bool
	mode         string // "NORMAL", "DRAG" or "SEARCH"
	sessionID    string

	// pointer is the virtual drag pointer fed to the collision detector
	// while a keyboard drag is active
	pointerRow int
	pointerX   float64

	// applyingHistory suppresses snapshot pushes while undo/redo replays
	// an earlier state through the instance
	applyingHistory bool
}

// NewApp creates a new App instance
func NewApp(filePath string, cfg *config.Config) (*App, error) {
	screen, err := ui.NewScreen(theme.LoadThemeOrDefault(cfg.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	store := storage.NewJSONStore(filePath)
	doc, err := store.Load()
	if err != nil {
		screen.Close()
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	strategy := doc.Strategy
	if strategy == "" {
		strategy = cfg.OrderStrategy()
	}

	blocks := doc.Blocks
	if len(blocks) == 0 {
		blocks = starterBlocks()
	}

	inst := tree.New(blocks, tree.Options{
		Strategy:       strategy,
		ContainerTypes: cfg.ContainerTypes,
		MaxDepth:       cfg.MaxDepth,
	})

	backups, err := storage.NewBackupManager()
	if err != nil {
		log.Printf("backups disabled: %v", err)
		backups = nil
	}

	a := &App{
		screen:       screen,
		inst:         inst,
		view:         ui.NewBlockView(inst),
		search:       ui.NewSearchBar(),
		help:         ui.NewHelpScreen(),
		store:        store,
		backups:      backups,
		cfg:          cfg,
		reducer:      history.Reducer[[]*block.Block]{MaxSteps: historyLimit},
		title:        doc.Title,
		strategy:     strategy,
		statusMsg:    "Ready",
		statusTime:   time.Now(),
		autoSaveTime: time.Now(),
		mode:         "NORMAL",
		sessionID:    newSessionID(),
	}
	if a.title == "" {
		a.title = "Untitled"
	}
	a.snapshot = history.NewState(inst.Blocks())

	inst.On(tree.EventBlocksChange, func(ev tree.Event) {
		a.onBlocksChange(ev)
	})
	if a.debugEnabled() {
		a.attachDebugLogging()
	}

	return a, nil
}

func starterBlocks() []*block.Block {
	return []*block.Block{
		{ID: block.GenerateID(), Type: "item", Order: block.IntOrder(0), Payload: map[string]any{"text": "Welcome to blocktree"}},
	}
}

func newSessionID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	id := make([]byte, 8)
	for i := range id {
		id[i] = chars[rand.Intn(len(chars))]
	}
	return string(id)
}

// SetDebugMode enables event dumps in the log file
func (a *App) SetDebugMode(enabled bool) {
	a.debugMode = enabled
	if enabled {
		a.attachDebugLogging()
	}
}

func (a *App) debugEnabled() bool {
	return a.debugMode || a.cfg.Get("debug") == "on"
}

// attachDebugLogging subscribes a dump handler for every event type
func (a *App) attachDebugLogging() {
	types := []tree.EventType{
		tree.EventBlocksChange,
		tree.EventDragStart,
		tree.EventDragMove,
		tree.EventDragEnd,
		tree.EventDragCancel,
		tree.EventExpandChange,
		tree.EventHoverChange,
		tree.EventBlockAdd,
		tree.EventBlockDelete,
	}
	for _, et := range types {
		eventType := et
		a.inst.On(eventType, func(ev tree.Event) {
			log.Printf("event %s: %s", eventType, spew.Sdump(ev))
		})
	}
}

// onBlocksChange pushes a history snapshot and marks the document dirty
func (a *App) onBlocksChange(ev tree.Event) {
	a.dirty = true
	if a.applyingHistory {
		return
	}
	a.snapshot = a.reducer.Set(a.snapshot, ev.Blocks)
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)

	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond) // ~20 FPS
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev != nil {
				a.handleRawEvent(ev)
			}
		case <-ticker.C:
			a.render()

			// Auto-save every 5 seconds if dirty
			if a.dirty && time.Since(a.autoSaveTime) > 5*time.Second {
				if err := a.Save(); err != nil {
					a.SetStatus("Failed to save: " + err.Error())
				}
			}
		}
	}

	return nil
}

// Close closes the application
func (a *App) Close() error {
	a.inst.Destroy()
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// SetStatus shows a transient message in the status line
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusTime = time.Now()
}

// Save writes the document to disk, taking a backup first
func (a *App) Save() error {
	doc := &storage.Document{
		Title:    a.title,
		Strategy: a.strategy,
		Blocks:   a.inst.Blocks(),
	}
	if a.backups != nil && a.store.FileExists() {
		if err := a.backups.CreateBackup(doc, a.store.FilePath, a.sessionID); err != nil {
			log.Printf("backup failed: %v", err)
		}
	}
	if err := a.store.Save(doc); err != nil {
		return err
	}
	a.dirty = false
	a.autoSaveTime = time.Now()
	a.SetStatus("Saved")
	return nil
}

// undo rolls the tree back one history step
func (a *App) undo() {
	prev := a.reducer.Undo(a.snapshot)
	if prev == a.snapshot {
		a.SetStatus("Nothing to undo")
		return
	}
	a.snapshot = prev
	a.applyState(prev.Present)
	a.SetStatus("Undo")
}

// redo replays one undone step
func (a *App) redo() {
	next := a.reducer.Redo(a.snapshot)
	if next == a.snapshot {
		a.SetStatus("Nothing to redo")
		return
	}
	a.snapshot = next
	a.applyState(next.Present)
	a.SetStatus("Redo")
}

func (a *App) applyState(blocks []*block.Block) {
	a.applyingHistory = true
	a.inst.SetBlocks(blocks)
	a.applyingHistory = false
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()

	width, height := a.screen.Size()

	header := fmt.Sprintf(" %s ", a.title)
	a.screen.DrawString(0, 0, header, a.screen.HeaderStyle())
	if a.dirty {
		a.screen.DrawString(ui.StringWidth(header)+1, 0, "[+]", a.screen.StatusModifiedStyle())
	}

	treeStartY := 1
	treeEndY := height - 1
	if a.search.IsActive() {
		treeEndY--
	}

	if a.help.IsVisible() {
		a.help.Render(a.screen)
	} else {
		a.view.Render(a.screen, treeStartY, treeEndY)
	}

	if a.search.IsActive() {
		a.search.Render(a.screen, height-2)
	}

	a.renderStatusLine(width, height-1)
	a.screen.Show()
}

func (a *App) renderStatusLine(width, y int) {
	mode := fmt.Sprintf(" %s ", a.mode)
	a.screen.DrawString(0, y, mode, a.screen.StatusModeStyle())

	// Status messages fade out after a few seconds
	if time.Since(a.statusTime) < 4*time.Second {
		a.screen.DrawStringLimited(ui.StringWidth(mode)+1, y, a.statusMsg, width-ui.StringWidth(mode)-1, a.screen.StatusMessageStyle())
	}
}

// handleRawEvent dispatches tcell events
func (a *App) handleRawEvent(ev tcell.Event) {
	switch event := ev.(type) {
	case *tcell.EventKey:
		if a.debugEnabled() {
			log.Printf("key: %s", event.Name())
		}
		a.handleKeyEvent(event)
	case *tcell.EventResize:
		a.screen.Size()
	}
}
