// Package inspect serves a read-only HTTP view of a running keel app:
// window list, node trees, and pending timers, as JSON. Snapshots are
// taken on the UI thread through Loop.Post, so handler goroutines never
// touch loop state directly.
package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/go-drift/keel/pkg/core"
	"github.com/go-drift/keel/pkg/sched"
	"github.com/go-drift/keel/pkg/window"
)

// maxTreeDepth caps serialization recursion on malformed trees.
const maxTreeDepth = 500

// snapshotTimeout bounds how long a handler waits for the UI thread.
const snapshotTimeout = 2 * time.Second

// WindowSource lists the windows to inspect. Implemented by app.App.
type WindowSource interface {
	Windows() []*window.Window
}

// Server is the inspector. Zero value is not usable; construct with New.
type Server struct {
	loop   *sched.Loop
	source WindowSource

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// New builds a server over the loop and window source. Call Start to
// begin serving.
func New(loop *sched.Loop, source WindowSource) *Server {
	return &Server{loop: loop, source: source}
}

// Start binds addr and serves in the background. Binding failures are
// returned synchronously; addr may use port 0 for an ephemeral port,
// recovered through Addr.
func (s *Server) Start(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return fmt.Errorf("inspect: already serving on %s", s.listener.Addr())
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("inspect: listen: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/windows", s.handleWindows)
	mux.HandleFunc("/tree", s.handleTree)
	mux.HandleFunc("/timers", s.handleTimers)

	server := &http.Server{Handler: mux}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			s.mu.Unlock()
		}
	}()
	return nil
}

// Addr returns the bound listen address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Close shuts the server down, waiting briefly for inflight requests.
func (s *Server) Close() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()
	if server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()
	server.Shutdown(ctx)
}

// snapshot runs fn on the UI thread and waits for it. It fails when the
// loop does not drain within the timeout (wedged task, stopped pump).
func (s *Server) snapshot(fn func()) error {
	done := make(chan struct{})
	s.loop.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-time.After(snapshotTimeout):
		return fmt.Errorf("inspect: ui thread did not respond within %v", snapshotTimeout)
	}
}

// SafeFloat marshals Inf and NaN as strings instead of failing the
// whole document.
type SafeFloat float64

func (f SafeFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 1) {
		return []byte(`"Infinity"`), nil
	}
	if math.IsInf(v, -1) {
		return []byte(`"-Infinity"`), nil
	}
	if math.IsNaN(v) {
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts both the numeric form and the stringified
// Inf/NaN forms MarshalJSON produces.
func (f *SafeFloat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "Infinity":
			*f = SafeFloat(math.Inf(1))
		case "-Infinity":
			*f = SafeFloat(math.Inf(-1))
		case "NaN":
			*f = SafeFloat(math.NaN())
		default:
			return fmt.Errorf("inspect: invalid float string %q", s)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = SafeFloat(v)
	return nil
}

// SafeSize is a JSON-safe size.
type SafeSize struct {
	Width  SafeFloat `json:"width"`
	Height SafeFloat `json:"height"`
}

// SafeOffset is a JSON-safe offset.
type SafeOffset struct {
	X SafeFloat `json:"x"`
	Y SafeFloat `json:"y"`
}

// WindowInfo is one entry of /windows.
type WindowInfo struct {
	ID          uint64    `json:"id"`
	Size        SafeSize  `json:"size"`
	Scale       SafeFloat `json:"scale"`
	FrameCount  int       `json:"frameCount"`
	NeedsRedraw bool      `json:"needsRedraw"`
	Nodes       int       `json:"nodes"`
}

// TreeNode is one node of /tree.
type TreeNode struct {
	Name        string     `json:"name"`
	Visual      string     `json:"visual"`
	Size        SafeSize   `json:"size"`
	Offset      SafeOffset `json:"offset"`
	NeedsLayout bool       `json:"needsLayout"`
	NeedsPaint  bool       `json:"needsPaint"`
	Children    []TreeNode `json:"children,omitempty"`
}

// TimerInfo is the /timers document.
type TimerInfo struct {
	Count        int    `json:"count"`
	Tasks        int    `json:"tasks"`
	NextDeadline string `json:"nextDeadline,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleWindows(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var infos []WindowInfo
	err := s.snapshot(func() {
		for _, win := range s.source.Windows() {
			infos = append(infos, windowInfo(win))
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if infos == nil {
		infos = []WindowInfo{}
	}
	writeJSON(w, infos)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := strconv.ParseUint(r.URL.Query().Get("window"), 10, 64)
	if err != nil {
		http.Error(w, "invalid window parameter", http.StatusBadRequest)
		return
	}

	var tree *TreeNode
	var found bool
	err = s.snapshot(func() {
		for _, win := range s.source.Windows() {
			if uint64(win.ID()) != id {
				continue
			}
			found = true
			if root := win.Root(); root != nil {
				t := serializeNode(root, 0)
				tree = &t
			}
			return
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if !found {
		http.Error(w, "no such window", http.StatusNotFound)
		return
	}
	if tree == nil {
		http.Error(w, "window has no root", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, tree)
}

func (s *Server) handleTimers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var info TimerInfo
	err := s.snapshot(func() {
		info.Count = s.loop.TimerCount()
		info.Tasks = s.loop.TaskCount()
		if deadline, ok := s.loop.NextDeadline(); ok {
			info.NextDeadline = deadline.Format(time.RFC3339Nano)
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, info)
}

func windowInfo(win *window.Window) WindowInfo {
	size := win.Size()
	info := WindowInfo{
		ID:          uint64(win.ID()),
		Size:        SafeSize{Width: SafeFloat(size.Width), Height: SafeFloat(size.Height)},
		Scale:       SafeFloat(win.Scale()),
		FrameCount:  win.FrameCount(),
		NeedsRedraw: win.NeedsRedraw(),
	}
	if root := win.Root(); root != nil {
		for range root.DepthFirst() {
			info.Nodes++
		}
	}
	return info
}

func serializeNode(n *core.Node, depth int) TreeNode {
	size := n.Size()
	offset := n.Transform().Translation()
	out := TreeNode{
		Name:        n.Name(),
		Visual:      visualName(n),
		Size:        SafeSize{Width: SafeFloat(size.Width), Height: SafeFloat(size.Height)},
		Offset:      SafeOffset{X: SafeFloat(offset.X), Y: SafeFloat(offset.Y)},
		NeedsLayout: n.NeedsLayout(),
		NeedsPaint:  n.NeedsPaint(),
	}
	if depth >= maxTreeDepth {
		return out
	}
	for c := range n.Children() {
		out.Children = append(out.Children, serializeNode(c, depth+1))
	}
	return out
}

func visualName(n *core.Node) string {
	v := n.Visual()
	if v == nil {
		return ""
	}
	return reflect.TypeOf(v).String()
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
