package tui

import (
	"io"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"wildguard/internal/geo"
	"wildguard/internal/layers"
	"wildguard/internal/overlay"
	"wildguard/internal/pointer"
	"wildguard/internal/viewport"
)

// Options wires a Model to its session.
type Options struct {
	Controller *viewport.Controller
	Data       overlay.Dataset
	Source     string // label for Data in the header
	Dir        string // directory listed in the file sidebar; defaults to the working dir
	Panning    bool
	Logger     logrus.FieldLogger
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string
	log    logrus.FieldLogger

	vc   *viewport.Controller
	ptr  *pointer.Controller
	surf *surface

	// Data
	data   overlay.Dataset
	source string
	pasted int

	// layers switched off by the user; the zoom policy still applies to the rest
	hidden map[layers.Kind]bool

	// File explorer
	cwd string
	l   list.Model

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// locked points table
	showLocks bool
	tbl       table.Model

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int

	// inspect popup
	selected     int
	inspectPopup string

	// locked point with range rings, -1 for none
	ringLock int
}

func New(o Options) Model {
	log := o.Logger
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	m := Model{
		helpVisible: true,
		status:      "wildguard ready",
		log:         log,
		vc:          o.Controller,
		surf:        &surface{w: 80, h: 20},
		data:        o.Data,
		source:      o.Source,
		hidden:      map[layers.Kind]bool{},
		cwd:         o.Dir,
		selected:    -1,
		ringLock:    -1,
	}
	if m.source == "" {
		m.source = "sample"
	}
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	vc := o.Controller
	m.ptr = pointer.New(vc, m.surf.rect,
		pointer.OnCursor(vc.SetCursor),
		pointer.OnLock(func(c geo.Coordinate) { vc.Lock(c) }),
		pointer.OnLeave(vc.ClearCursor),
		pointer.WithPanning(o.Panning),
	)
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Data files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "fire POLYGON((38.9 -3.3, 39.4 -3.3, 39.4 -2.9, 38.9 -3.3))  Enter adds the zone; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// locked points table
	m.tbl = table.New(table.WithColumns(lockColumns), table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a data file at launch.
func NewWithPath(o Options, path string) Model {
	m := New(o)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }
