package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-drift/keel/cmd/keel/internal/config"
	"github.com/go-drift/keel/pkg/inspect"
)

// defaultInspectAddr matches the address the starter templates suggest.
const defaultInspectAddr = "localhost:7473"

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Query a running app's inspector",
		Long: `Query the HTTP inspector of a running Keel application.

The application must have been started with the inspector enabled
(app.WithInspectAddr). Topics:

  tree      Print the node tree of a window (default)
  windows   List open windows
  timers    Show scheduler timer and task counts
  health    Check that the inspector is reachable

Examples:
  keel inspect
  keel inspect windows --addr localhost:7473
  keel inspect tree --window 2`,
		Usage: "keel inspect [topic] [--addr host:port] [--window N]",
		Run:   runInspect,
	})
}

func runInspect(args []string) error {
	addr := ""
	windowID := "1"
	topic := "tree"

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--addr":
			if i+1 >= len(args) {
				return fmt.Errorf("--addr requires a host:port value")
			}
			addr = args[i+1]
			i++
		case strings.HasPrefix(arg, "--addr="):
			addr = strings.TrimPrefix(arg, "--addr=")
		case arg == "--window":
			if i+1 >= len(args) {
				return fmt.Errorf("--window requires a window id")
			}
			windowID = args[i+1]
			i++
		case strings.HasPrefix(arg, "--window="):
			windowID = strings.TrimPrefix(arg, "--window=")
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag %q", arg)
		default:
			topic = arg
		}
	}

	if addr == "" {
		addr = projectInspectAddr()
	}

	client := &http.Client{Timeout: 5 * time.Second}
	base := "http://" + addr
	return inspectTopic(os.Stdout, client, base, topic, windowID)
}

// projectInspectAddr reads the inspector address from keel.yaml when the
// CLI runs inside a project, falling back to the conventional default.
func projectInspectAddr() string {
	root, err := config.FindProjectRoot()
	if err != nil {
		return defaultInspectAddr
	}
	resolved, err := config.Resolve(root)
	if err != nil || resolved.InspectAddr == "" {
		return defaultInspectAddr
	}
	return resolved.InspectAddr
}

// inspectTopic fetches one inspector topic and writes a human-readable
// rendering to w.
func inspectTopic(w io.Writer, client *http.Client, base, topic, windowID string) error {
	switch topic {
	case "health":
		var health map[string]string
		if err := fetchJSON(client, base+"/health", &health); err != nil {
			return err
		}
		fmt.Fprintf(w, "inspector at %s: %s\n", base, health["status"])
		return nil
	case "windows":
		var infos []inspect.WindowInfo
		if err := fetchJSON(client, base+"/windows", &infos); err != nil {
			return err
		}
		printWindows(w, infos)
		return nil
	case "tree":
		var tree inspect.TreeNode
		if err := fetchJSON(client, base+"/tree?window="+windowID, &tree); err != nil {
			return err
		}
		printTree(w, tree, 0)
		return nil
	case "timers":
		var timers inspect.TimerInfo
		if err := fetchJSON(client, base+"/timers", &timers); err != nil {
			return err
		}
		fmt.Fprintf(w, "timers: %d pending, %d tasks\n", timers.Count, timers.Tasks)
		if timers.NextDeadline != "" {
			fmt.Fprintf(w, "next deadline: %s\n", timers.NextDeadline)
		}
		return nil
	default:
		return fmt.Errorf("unknown inspect topic %q (want tree, windows, timers, or health)", topic)
	}
}

func fetchJSON(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("inspector unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%s: %s: %s", url, resp.Status, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode inspector response: %w", err)
	}
	return nil
}

func printWindows(w io.Writer, infos []inspect.WindowInfo) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "no open windows")
		return
	}
	for _, info := range infos {
		fmt.Fprintf(w, "window %d: %gx%g @%gx, %d nodes, %d frames",
			info.ID, float64(info.Size.Width), float64(info.Size.Height),
			float64(info.Scale), info.Nodes, info.FrameCount)
		if info.NeedsRedraw {
			fmt.Fprint(w, " (redraw pending)")
		}
		fmt.Fprintln(w)
	}
}

// printTree renders one node per line, indented two spaces per depth,
// with dirty markers after the geometry.
func printTree(w io.Writer, node inspect.TreeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s [%s] %gx%g @(%g,%g)", indent, node.Name, node.Visual,
		float64(node.Size.Width), float64(node.Size.Height),
		float64(node.Offset.X), float64(node.Offset.Y))
	if node.NeedsLayout {
		fmt.Fprint(w, " needs-layout")
	}
	if node.NeedsPaint {
		fmt.Fprint(w, " needs-paint")
	}
	fmt.Fprintln(w)
	for _, child := range node.Children {
		printTree(w, child, depth+1)
	}
}
