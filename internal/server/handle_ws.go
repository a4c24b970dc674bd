package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Tables are shared on a local network by QR code; any origin may watch.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleWS streams the same messages as handleEvents over a WebSocket. The
// stream is read-only; inbound frames other than control frames are ignored.
func handleWS(logger *slog.Logger, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctl := tableFrom(r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Debug("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		ch := broker.Subscribe(ctl.Key())
		defer broker.Unsubscribe(ctl.Key(), ch)

		done := make(chan struct{})
		go func() {
			defer close(done)
			conn.SetReadLimit(512)
			conn.SetReadDeadline(time.Now().Add(wsPongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(wsPongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					logger.Debug("websocket read ended", "error", err)
					return
				}
			}
		}()

		write := func(data []byte) error {
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			return conn.WriteMessage(websocket.TextMessage, data)
		}

		if err := write(snapshotMessage(newStateView(ctl.State()))); err != nil {
			return
		}

		ping := time.NewTicker(wsPingPeriod)
		defer ping.Stop()

		for {
			select {
			case <-done:
				return
			case <-r.Context().Done():
				return
			case data := <-ch:
				if err := write(data); err != nil {
					logger.Debug("websocket write failed", "error", err)
					return
				}
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			}
		}
	}
}
