// Package app wires the editor, tabs, highlighting and terminal UI together
// and runs the main loop.
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/config"
	"github.com/bethropolis/quicknotepad/internal/core"
	"github.com/bethropolis/quicknotepad/internal/core/clipboard"
	"github.com/bethropolis/quicknotepad/internal/core/cursor"
	"github.com/bethropolis/quicknotepad/internal/core/history"
	"github.com/bethropolis/quicknotepad/internal/core/tabs"
	"github.com/bethropolis/quicknotepad/internal/event"
	"github.com/bethropolis/quicknotepad/internal/highlight"
	"github.com/bethropolis/quicknotepad/internal/highlighter"
	"github.com/bethropolis/quicknotepad/internal/input"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/modehandler"
	"github.com/bethropolis/quicknotepad/internal/plugin"
	"github.com/bethropolis/quicknotepad/internal/statusbar"
	"github.com/bethropolis/quicknotepad/internal/theme"
	"github.com/bethropolis/quicknotepad/internal/tui"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg              *config.Config
	tuiManager       *tui.TUI
	editor           *core.Editor
	tabs             *tabs.Manager
	statusBar        *statusbar.StatusBar
	eventManager     *event.Manager
	modeHandler      *modehandler.ModeHandler
	themeManager     *theme.Manager
	highlightManager *highlight.Manager
	highlightedPath  string
	pluginManager    *plugin.Manager

	events chan tcell.Event
	tasks  chan func() // work posted from other goroutines, run on the main loop
	quit   chan struct{}
	done   chan struct{}
}

// NewApp creates the application on the real terminal and opens filePath
// (if not empty) in a tab.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	themeManager := loadThemes(cfg)
	tuiManager, err := tui.New(themeManager.Current())
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return newApp(cfg, tuiManager, themeManager, filePath), nil
}

// NewAppWithScreen is NewApp on a caller-supplied screen.
func NewAppWithScreen(cfg *config.Config, screen tcell.Screen, filePath string) (*App, error) {
	themeManager := loadThemes(cfg)
	tuiManager, err := tui.NewWithScreen(screen, themeManager.Current())
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return newApp(cfg, tuiManager, themeManager, filePath), nil
}

func loadThemes(cfg *config.Config) *theme.Manager {
	themeManager := theme.NewManager(config.ThemesDir())
	if err := themeManager.SetTheme(cfg.Editor.Theme); err != nil {
		logger.Warnf("App: %v, using '%s'", err, themeManager.Current().Name)
	}
	return themeManager
}

func newApp(cfg *config.Config, tuiManager *tui.TUI, themeManager *theme.Manager, filePath string) *App {
	ec := cfg.Editor
	eventManager := event.NewManager()
	newHistory := func() *history.Manager {
		return history.NewManager(ec.MaxHistory, history.WithGroupThreshold(ec.GroupThreshold()))
	}

	editor := core.NewEditor(buffer.NewSliceBuffer(),
		core.WithCursorSettings(cursor.Settings{
			TabWidth:     ec.TabWidth,
			ScrollOff:    ec.ScrollOff,
			MarginWidth:  ec.MarginWidth,
			HeaderHeight: ec.HeaderHeight,
		}),
		core.WithHistory(newHistory()),
		core.WithClipboard(clipboard.NewProvider(ec.SystemClipboard)),
		core.WithEventManager(eventManager),
	)

	tabManager := tabs.NewManager(editor, tabs.Options{
		MaxTabs:     ec.MaxTabs,
		SessionPath: ec.SessionFile,
		NewHistory:  newHistory,
		Events:      eventManager,
	})

	statusBar := statusbar.New(statusbar.ConfigFromTheme(themeManager.Current(), config.MessageTimeout))
	quit := make(chan struct{})

	a := &App{
		cfg:          cfg,
		tuiManager:   tuiManager,
		editor:       editor,
		tabs:         tabManager,
		statusBar:    statusBar,
		eventManager: eventManager,
		themeManager: themeManager,
		events:       make(chan tcell.Event),
		tasks:        make(chan func(), 16),
		quit:         quit,
		done:         make(chan struct{}),
	}
	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         editor,
		Tabs:           tabManager,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      statusBar,
		Themes:         a,
		QuitSignal:     quit,
	})
	a.highlightManager = highlight.NewManager(editor, highlighter.NewHighlighter(), a.post, config.HighlightDebounce)

	a.subscribe()
	a.loadPlugins()
	a.resize()

	if err := tabManager.RestoreSession(); err != nil {
		logger.Warnf("App: could not restore session: %v", err)
	}
	if filePath != "" {
		if err := tabManager.OpenFile(filePath); err != nil {
			logger.Errorf("App: %v", err)
			statusBar.SetTemporaryMessage("Error: %v", err)
		}
	}
	a.rehighlight()
	return a
}

// post queues fn for the main loop. It gives up once the app has stopped.
func (a *App) post(fn func()) {
	select {
	case a.tasks <- fn:
	case <-a.done:
	}
}

// Run starts the application's event loop and blocks until the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.highlightManager.Shutdown()
	defer a.pluginManager.ShutdownPlugins()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("%s %s | F1 for shortcuts", config.AppName, config.Version)
	a.draw()

	for {
		select {
		case <-a.quit:
			close(a.done)
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("Exiting application.")
			return nil
		case ev := <-a.events:
			if a.handleEvent(ev) {
				a.draw()
			}
		case task := <-a.tasks:
			task()
			a.draw()
		}
	}
}

// eventLoop forwards terminal events to the main loop.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.done:
			return
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
		a.tuiManager.Sync()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(ev)
	case *tcell.EventMouse:
		return a.modeHandler.HandleMouseEvent(ev)
	case *tcell.EventPaste:
		return a.modeHandler.HandlePasteEvent(ev)
	}
	return false
}

// resize gives the editor the screen minus the tab line, the line number
// margin and the status bar.
func (a *App) resize() {
	w, h := a.tuiManager.Size()
	ec := a.cfg.Editor
	cols := w - ec.MarginWidth
	rows := h - ec.HeaderHeight - ec.StatusBarHeight
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	logger.DebugTagf("draw", "App: screen %dx%d, text area %dx%d", w, h, cols, rows)
	a.editor.SetViewSize(cols, rows)
}
