package webgain

import (
	"sync/atomic"

	"github.com/michaelquigley/df/dl"
)

const (
	DefaultEditorWidth  = 900
	DefaultEditorHeight = 600
)

// EditorState is the part of the editor that outlives any single open UI: the last known
// viewport size
type EditorState struct {
	width  atomic.Uint32
	height atomic.Uint32
}

// NewEditorState creates editor state with the given initial size
func NewEditorState(width, height uint32) *EditorState {
	es := &EditorState{}
	es.SetSize(width, height)
	return es
}

func (es *EditorState) Size() (width, height uint32) {
	return es.width.Load(), es.height.Load()
}

func (es *EditorState) SetSize(width, height uint32) {
	es.width.Store(width)
	es.height.Store(height)
}

// Editor binds a parameter, its change flag and the persistent editor state. Open creates
// an EventLoop each time the UI opens.
type Editor struct {
	param  *GainParam
	flag   *ChangeFlag
	state  *EditorState
	setter *ParamSetter
}

// NewEditor creates an editor; host receives automation gestures and may be nil
func NewEditor(param *GainParam, flag *ChangeFlag, state *EditorState, host HostEditor) *Editor {
	return &Editor{
		param:  param,
		flag:   flag,
		state:  state,
		setter: NewParamSetter(host),
	}
}

// Open starts an event loop for a freshly opened UI
func (e *Editor) Open(view Webview) *EventLoop {
	width, height := e.state.Size()
	dl.Debugf("editor opened (%dx%d)", width, height)
	return &EventLoop{editor: e, view: view}
}

// State returns the persistent editor state
func (e *Editor) State() *EditorState {
	return e.state
}

// LoopState is the phase of an EventLoop tick
type LoopState int

const (
	LoopIdle LoopState = iota
	LoopDraining
	LoopNotifyCheck
	LoopClosed
)

func (s LoopState) String() string {
	switch s {
	case LoopIdle:
		return "idle"
	case LoopDraining:
		return "draining"
	case LoopNotifyCheck:
		return "notify_check"
	case LoopClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// EventLoop is the UI-side body driven by the host's UI tick. It is not safe for concurrent
// use: the host calls Tick from one goroutine.
type EventLoop struct {
	editor       *Editor
	view         Webview
	state        LoopState
	discarded    int
	filesDropped int
}

// Tick drains every pending inbound message, then reports a parameter change if one has
// happened since the previous tick. It never blocks and never fails.
func (l *EventLoop) Tick() {
	if l.state == LoopClosed {
		return
	}

	l.state = LoopDraining
	for {
		ev, ok := l.view.NextEvent()
		if !ok {
			break
		}
		switch ev.Kind {
		case EventMessage:
			l.dispatch(ev.Payload)
		case EventFileDropped:
			l.filesDropped++
			dl.Infof("file dropped: %s", ev.Path)
		}
	}

	l.state = LoopNotifyCheck
	if l.editor.flag.ConsumeIfDirty() {
		p := l.editor.param
		notice := ParamChangeNotice{Action: ActionSetGain, Value: p.Value(), Text: p.Text()}
		if err := l.view.SendJSON(notice); err != nil {
			dl.Errorf("error sending param change: %v", err)
		}
	}

	l.state = LoopIdle
}

func (l *EventLoop) dispatch(payload []byte) {
	action, err := DecodeAction(payload)
	if err != nil {
		l.discarded++
		dl.Warnf("discarding inbound message: %v", err)
		return
	}

	switch a := action.(type) {
	case Init:
		width, height := l.editor.state.Size()
		if err := l.view.SendJSON(SetSizeNotice{Width: width, Height: height}); err != nil {
			dl.Errorf("error sending size: %v", err)
		}

	case SetSize:
		if l.view.Resize(a.Width, a.Height) {
			l.editor.state.SetSize(a.Width, a.Height)
		} else {
			dl.Debugf("window declined resize to %dx%d", a.Width, a.Height)
		}

	case SetGain:
		l.editor.setter.SetParameter(l.editor.param, a.Value)
	}
}

// Close ends the loop; undrained inbound messages are dropped and further ticks do nothing
func (l *EventLoop) Close() {
	if l.state == LoopClosed {
		return
	}
	l.state = LoopClosed
	dropped := 0
	for {
		if _, ok := l.view.NextEvent(); !ok {
			break
		}
		dropped++
	}
	if dropped > 0 {
		dl.Debugf("editor closed, dropped %d undrained messages", dropped)
	}
}

// State returns the loop's current phase
func (l *EventLoop) State() LoopState {
	return l.state
}

// FilesDropped returns how many file drop events the loop has seen
func (l *EventLoop) FilesDropped() int {
	return l.filesDropped
}

// Discarded returns how many malformed inbound messages have been dropped
func (l *EventLoop) Discarded() int {
	return l.discarded
}
