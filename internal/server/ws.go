package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/routes"
	"github.com/grovetools/navshell/shell"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsMaxMessage = 4096
)

// Frame types on the location channel.
const (
	FrameNavigate = "navigate"
	FrameRender   = "render"
	FrameError    = "error"
)

// ClientFrame is sent by the browser to move its current location.
type ClientFrame struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// ServerFrame carries either a rendered content fragment or an error.
type ServerFrame struct {
	Type    string           `json:"type"`
	Path    string           `json:"path,omitempty"`
	Matched bool             `json:"matched"`
	Page    routes.PageID    `json:"page,omitempty"`
	Title   string           `json:"title,omitempty"`
	Status  int              `json:"status,omitempty"`
	HTML    string           `json:"html,omitempty"`
	Code    errors.ErrorCode `json:"code,omitempty"`
	Message string           `json:"message,omitempty"`
}

// handleWebSocket upgrades to the location channel. Each connection owns one
// navigator, so the connection has exactly one mounted page at a time.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Debug("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	nav := s.shell.NewNavigator("ws")
	frames := make(chan ClientFrame)
	go s.readFrames(ctx, conn, frames, cancel)

	updates := s.store.Subscribe()
	defer s.store.Unsubscribe(updates)

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	s.logger.Debug("WebSocket client connected")
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("WebSocket client disconnected")
			return

		case <-s.done:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteWait))
			return

		case f := <-frames:
			if err := s.write(conn, s.handleFrame(ctx, nav, f)); err != nil {
				return
			}

		case u := <-updates:
			if u.Type != store.UpdateConfigReload {
				continue
			}
			if _, ok := nav.Current(); !ok {
				continue
			}
			if err := s.write(conn, s.renderFrame(ctx, nav.Refresh())); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readFrames is the connection's only reader. It cancels ctx when the peer
// goes away.
func (s *Server) readFrames(ctx context.Context, conn *websocket.Conn, out chan<- ClientFrame, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(wsMaxMessage)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var f ClientFrame
		if err := conn.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.WithError(err).Debug("WebSocket read error")
			}
			return
		}
		select {
		case out <- f:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) handleFrame(ctx context.Context, nav *shell.Navigator, f ClientFrame) ServerFrame {
	if f.Type != FrameNavigate {
		return errorFrame(errors.New(errors.ErrCodeInvalidInput, "unknown frame type '"+f.Type+"'"))
	}
	if f.Path == "" {
		return errorFrame(errors.New(errors.ErrCodeInvalidInput, "navigate frame requires a path"))
	}
	t := nav.Navigate(f.Path)
	return s.renderFrame(ctx, t.To)
}

func (s *Server) renderFrame(ctx context.Context, res shell.Resolution) ServerFrame {
	result, frag, err := s.shell.RenderFragment(ctx, res)
	if err != nil {
		s.logger.WithError(err).WithField("path", res.Path).Error("Failed to render fragment")
		if se, ok := errors.As(err); ok {
			return errorFrame(se)
		}
		return errorFrame(errors.Wrap(err, errors.ErrCodeInternal, "render failed"))
	}
	return ServerFrame{
		Type:    FrameRender,
		Path:    result.Path,
		Matched: result.Matched,
		Page:    result.Page,
		Title:   result.Title,
		Status:  result.Status(),
		HTML:    string(frag),
	}
}

func (s *Server) write(conn *websocket.Conn, f ServerFrame) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(f); err != nil {
		s.logger.WithError(err).Debug("WebSocket write failed")
		return err
	}
	return nil
}

func errorFrame(err *errors.ShellError) ServerFrame {
	return ServerFrame{Type: FrameError, Code: err.Code, Message: err.Message}
}
