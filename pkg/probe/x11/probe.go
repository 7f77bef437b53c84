// Package x11 implements probe.Probe against an X server using XCB.
package x11

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/skontar/presentation-switch/pkg/probe"
)

// ErrNoActiveWindow is returned when no window currently has focus.
var ErrNoActiveWindow = errors.New("no active window found")

// Probe holds a live X connection with the atoms it needs pre-interned.
type Probe struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
	cpu   *cpuTracker
}

var atomNames = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_NAME",
	"_NET_WM_PID",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
	"WM_NAME",
	"WM_CLASS",
	"UTF8_STRING",
}

// New connects to the X server named by $DISPLAY and interns the atoms the
// probe uses. The connection stays open for the probe's lifetime.
func New() (*Probe, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root

	p := &Probe{
		conn:  conn,
		root:  root,
		atoms: make(map[string]xproto.Atom, len(atomNames)),
		cpu:   newCPUTracker(),
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to intern atom %s: %w", name, err)
		}
		p.atoms[name] = reply.Atom
	}

	return p, nil
}

// ActiveWindow returns a snapshot of the focused window. The CPU field is
// the usage accumulated since the previous snapshot of the same process.
func (p *Probe) ActiveWindow() (*probe.WindowInfo, error) {
	win, err := p.activeWindow()
	if err != nil {
		return nil, err
	}

	instance, class := p.windowClass(win)
	info := &probe.WindowInfo{
		Title:    p.windowName(win),
		Instance: instance,
		Class:    class,
		PID:      p.windowPID(win),
	}

	if states, err := p.windowStates(win); err == nil {
		info.Fullscreen = containsAtom(states, p.atoms["_NET_WM_STATE_FULLSCREEN"])
		info.FullscreenKnown = true
	}

	if info.PID != 0 {
		if pct, ok := p.cpu.usage(info.PID); ok {
			info.CPU = pct
			info.CPUKnown = true
		}
	}

	return info, nil
}

// Close shuts down the X connection.
func (p *Probe) Close() error {
	p.conn.Close()
	return nil
}

func (p *Probe) getProperty(window xproto.Window, atom xproto.Atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(p.conn, false, window, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (p *Probe) activeWindowFromProperty() xproto.Window {
	data, err := p.getProperty(p.root, p.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err != nil || len(data) < 4 {
		return 0
	}
	return xproto.Window(binary.LittleEndian.Uint32(data))
}

func (p *Probe) activeWindowFromInputFocus() xproto.Window {
	reply, err := xproto.GetInputFocus(p.conn).Reply()
	if err != nil {
		return 0
	}
	return reply.Focus
}

func (p *Probe) topLevelParent(window xproto.Window) xproto.Window {
	for {
		reply, err := xproto.QueryTree(p.conn, window).Reply()
		if err != nil || reply.Parent == p.root || reply.Parent == 0 {
			return window
		}
		window = reply.Parent
	}
}

func (p *Probe) hasValidName(window xproto.Window) bool {
	data, _ := p.getProperty(window, p.atoms["_NET_WM_NAME"], p.atoms["UTF8_STRING"], 1)
	if len(data) > 0 {
		return true
	}
	data, _ = p.getProperty(window, p.atoms["WM_NAME"], xproto.AtomString, 1)
	return len(data) > 0
}

// activeWindow resolves the focused top-level window, retrying briefly while
// the window manager settles after a focus change.
func (p *Probe) activeWindow() (xproto.Window, error) {
	for i := 0; i < 5; i++ {
		windowID := p.activeWindowFromProperty()
		if windowID != 0 && p.hasValidName(windowID) {
			return windowID, nil
		}

		windowID = p.activeWindowFromInputFocus()
		if windowID != 0 && windowID != p.root {
			topLevel := p.topLevelParent(windowID)
			if topLevel != 0 && p.hasValidName(topLevel) {
				return topLevel, nil
			}
		}

		time.Sleep(20 * time.Millisecond)
	}

	return 0, ErrNoActiveWindow
}

func (p *Probe) windowName(window xproto.Window) string {
	data, err := p.getProperty(window, p.atoms["_NET_WM_NAME"], p.atoms["UTF8_STRING"], 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	data, err = p.getProperty(window, p.atoms["WM_NAME"], xproto.AtomString, 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	return ""
}

func (p *Probe) windowClass(window xproto.Window) (instance, class string) {
	data, err := p.getProperty(window, p.atoms["WM_CLASS"], xproto.AtomString, 256)
	if err != nil {
		return "", ""
	}
	return parseClassProperty(data)
}

func (p *Probe) windowPID(window xproto.Window) uint32 {
	data, err := p.getProperty(window, p.atoms["_NET_WM_PID"], xproto.AtomCardinal, 1)
	if err != nil || len(data) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(data)
}

func (p *Probe) windowStates(window xproto.Window) ([]byte, error) {
	return p.getProperty(window, p.atoms["_NET_WM_STATE"], xproto.AtomAtom, 32)
}

// parseClassProperty splits the raw WM_CLASS property into its instance and
// class strings. The property is two NUL-terminated strings back to back.
func parseClassProperty(data []byte) (instance, class string) {
	if len(data) == 0 {
		return "", ""
	}

	parts := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
	if len(parts) >= 1 {
		instance = parts[0]
	}
	if len(parts) >= 2 {
		class = parts[1]
	}
	return instance, class
}

// containsAtom reports whether the raw _NET_WM_STATE value (a list of 32-bit
// atoms) contains the given atom.
func containsAtom(data []byte, atom xproto.Atom) bool {
	for i := 0; i+4 <= len(data); i += 4 {
		if xproto.Atom(binary.LittleEndian.Uint32(data[i:i+4])) == atom {
			return true
		}
	}
	return false
}
