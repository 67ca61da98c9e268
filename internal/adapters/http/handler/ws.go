package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/adapters/http/middleware"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/attendance"
)

const (
	feedWriteTimeout = 10 * time.Second
	feedPingInterval = 30 * time.Second
)

// FeedHandler は勤怠レコードの変更を WebSocket で配信するハンドラです。
type FeedHandler struct {
	watcher  *attendance.Watcher
	upgrader websocket.Upgrader
}

// NewFeedHandler は FeedHandler を生成します。
func NewFeedHandler(watcher *attendance.Watcher) *FeedHandler {
	return &FeedHandler{
		watcher: watcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

type feedMessage struct {
	Records []recordPayload `json:"records"`
	Active  *recordPayload  `json:"active"`
	// Degraded はアクティブセッションが複数観測された異常状態を示します。
	Degraded bool `json:"degraded"`
}

// Serve は操作者自身のレコード集合の変更を購読し、スナップショットを
// 逐次プッシュします。接続直後に現在値を1回配信します。
func (h *FeedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feed: upgrade: %v", err)
		return
	}
	defer conn.Close()

	snapshots, cancel, err := h.watcher.WatchUser(r.Context(), identity.UserID)
	if err != nil {
		log.Printf("feed: watch %s: %v", identity.UserID, err)
		return
	}
	defer cancel()

	// クライアント側の切断を検知するための読み捨てループです。
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case snap, open := <-snapshots:
			if !open {
				return
			}
			msg := feedMessage{Records: toRecordPayloads(snap.Records), Degraded: snap.Err != nil}
			if snap.Active != nil {
				active := toRecordPayload(snap.Active)
				msg.Active = &active
			}

			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}
