package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/sirupsen/logrus"

	"wildguard/internal/overlay"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !overlay.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
	if len(items) == 0 && m.showSidebar {
		m.status = "no supported files in " + m.cwd
	}
}

// loadPath replaces the overlay dataset with a file's contents. Locked points and
// the view are kept.
func (m *Model) loadPath(p string) {
	d, err := overlay.LoadFile(p)
	if err != nil {
		m.loadFailed(p, err)
		return
	}
	m.data = d
	m.source = filepath.Base(p)
	m.loaded(p, "loaded")
}

// appendPath merges a file into the current dataset.
func (m *Model) appendPath(p string) {
	d, err := overlay.LoadFile(p)
	if err != nil {
		m.loadFailed(p, err)
		return
	}
	m.data = m.data.Merge(d)
	m.source += "+" + filepath.Base(p)
	m.loaded(p, "merged")
}

func (m *Model) loadFailed(p string, err error) {
	m.status = "load error: " + err.Error()
	m.log.WithError(err).WithField("path", p).Warn("data load failed")
}

func (m *Model) loaded(p, verb string) {
	d := m.data
	m.selected = -1
	m.inspectPopup = ""
	inView := d.InBounds(m.vc.Bounds())
	m.status = fmt.Sprintf("%s: %s  entities=%d zones=%d in view=%d", verb, m.source, len(d.Entities), len(d.Zones), inView)
	fields := logrus.Fields{
		"path":     p,
		"entities": len(d.Entities),
		"zones":    len(d.Zones),
		"in_view":  inView,
	}
	if ext, err := d.Extent(0.01); err == nil {
		fields["extent"] = ext
	}
	m.log.WithFields(fields).Info("dataset " + verb)
}
