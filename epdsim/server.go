// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epdsim

import (
	"bytes"
	"image/png"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// pushInterval throttles websocket frames; refreshes arriving faster are
// coalesced into the next push.
const pushInterval = 100 * time.Millisecond

// Server exposes a simulated panel over HTTP: "/" serves a minimal viewer
// page, "/frame.png" the current glass content and "/live" a websocket
// pushing a PNG frame after every completed refresh.
type Server struct {
	panel *Panel
	log   zerolog.Logger

	mux      *http.ServeMux
	upgrader websocket.Upgrader
}

// NewServer wraps a panel in an HTTP handler. A nil logger disables
// logging.
func NewServer(panel *Panel, log *zerolog.Logger) *Server {
	l := zerolog.Nop()
	if log != nil {
		l = *log
	}

	s := &Server{
		panel: panel,
		log:   l,
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/frame.png", s.handleFrame)
	s.mux.HandleFunc("/live", s.handleLive)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) encodeFrame() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.panel.Frame()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	payload, err := s.encodeFrame()
	if err != nil {
		s.log.Error().Err(err).Msg("encoding frame failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(payload)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	refresh, cancel := s.panel.Subscribe()
	defer cancel()

	s.log.Debug().Str("remote", r.RemoteAddr).Msg("viewer connected")

	// Discard incoming messages and unblock on client close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var lastPush time.Time
	for {
		payload, err := s.encodeFrame()
		if err != nil {
			s.log.Error().Err(err).Msg("encoding frame failed")
			return
		}

		if wait := pushInterval - time.Since(lastPush); wait > 0 {
			time.Sleep(wait)
		}
		lastPush = time.Now()

		if err := conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
			return
		}

		select {
		case <-refresh:
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>epdsim</title></head>
<body style="background:#ddd;text-align:center">
<img id="panel" src="/frame.png" style="border:8px solid #333;margin-top:2em">
<script>
const img = document.getElementById("panel");
const ws = new WebSocket("ws://" + location.host + "/live");
ws.binaryType = "blob";
ws.onmessage = (ev) => {
  const url = URL.createObjectURL(ev.data);
  img.onload = () => URL.revokeObjectURL(url);
  img.src = url;
};
</script>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}
