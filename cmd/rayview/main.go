// Command rayview serves a live render preview over a websocket.
// It renders the scene on each client connection, streaming row
// progress and a final base64-encoded PNG frame as JSON messages.
package main

import (
	"bytes"
	"encoding/base64"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vikram-vadrevu/raytracer/render"
	"github.com/vikram-vadrevu/raytracer/scenefile"
)

type previewServer struct {
	scenePath string
	seed      int64
	upgrader  websocket.Upgrader
}

type progressMessage struct {
	Type      string `json:"type"`
	RowsDone  int    `json:"rowsDone,omitempty"`
	TotalRows int    `json:"totalRows,omitempty"`
	Frame     string `json:"frame,omitempty"`
	Error     string `json:"error,omitempty"`
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	seed := flag.Int64("seed", 0, "Random seed for sampling")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <scene-file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	srv := &previewServer{
		scenePath: flag.Arg(0),
		seed:      *seed,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // local preview tool, any origin is fine
			},
		},
	}

	http.HandleFunc("/", srv.handleIndex)
	http.HandleFunc("/ws", srv.handleRender)

	slog.Info("preview server listening", "addr", *addr, "scene", srv.scenePath)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

func (s *previewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

// handleRender renders the scene once per connection. The scene file
// is re-read on every render so edits show up on reload.
func (s *previewServer) handleRender(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	// progress callbacks arrive from every render worker, but the
	// websocket allows only one writer at a time
	var mu sync.Mutex
	send := func(msg progressMessage) {
		mu.Lock()
		defer mu.Unlock()
		if err := conn.WriteJSON(msg); err != nil {
			slog.Warn("websocket write failed", "err", err)
		}
	}

	file, err := scenefile.Load(s.scenePath)
	if err != nil {
		send(progressMessage{Type: "error", Error: err.Error()})
		return
	}

	img, err := render.Render(r.Context(), file.Scene, file.Camera, render.Options{
		Samples: file.Samples,
		Seed:    s.seed,
		Progress: func(rowsDone, totalRows int) {
			send(progressMessage{Type: "progress", RowsDone: rowsDone, TotalRows: totalRows})
		},
	})
	if err != nil {
		send(progressMessage{Type: "error", Error: err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(&buf, img); err != nil {
		send(progressMessage{Type: "error", Error: err.Error()})
		return
	}
	send(progressMessage{
		Type:  "frame",
		Frame: base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>rayview</title>
<style>
  body { background: #111; color: #ccc; font-family: monospace; text-align: center; }
  img { image-rendering: pixelated; max-width: 95vw; }
</style>
</head>
<body>
<h3 id="status">connecting...</h3>
<img id="frame">
<script>
  const status = document.getElementById("status");
  const frame = document.getElementById("frame");
  const ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = (ev) => {
    const msg = JSON.parse(ev.data);
    if (msg.type === "progress") {
      status.textContent = "rendering " + msg.rowsDone + "/" + msg.totalRows;
    } else if (msg.type === "frame") {
      status.textContent = "done";
      frame.src = "data:image/png;base64," + msg.frame;
    } else if (msg.type === "error") {
      status.textContent = "error: " + msg.error;
    }
  };
  ws.onclose = () => { if (status.textContent === "connecting...") status.textContent = "disconnected"; };
</script>
</body>
</html>
`
