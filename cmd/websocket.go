package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"bnbBack/internal/logger"
	"bnbBack/internal/models"
)

const (
	readLimit     = 512
	readDeadline  = 120 * time.Second
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
)

// RankingHub pushes the re-ranked apartment index to every connected
// websocket client after each vote.
type RankingHub struct {
	clients    map[*websocket.Conn]struct{}
	broadcast  chan models.ApartmentList
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	log        logger.Logger
	upgrader   websocket.Upgrader
}

func NewRankingHub(log logger.Logger) *RankingHub {
	return &RankingHub{
		clients:    make(map[*websocket.Conn]struct{}),
		broadcast:  make(chan models.ApartmentList, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		log:        log,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Run owns the clients map. It returns when ctx is done.
func (h *RankingHub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for conn := range h.clients {
				_ = writeClose(conn, websocket.CloseGoingAway, "server shutdown")
				_ = conn.Close()
			}
			return

		case conn := <-h.register:
			h.clients[conn] = struct{}{}

		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				_ = conn.Close()
				delete(h.clients, conn)
			}

		case ranking := <-h.broadcast:
			for conn := range h.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(ranking); err != nil {
					h.log.Warnf("ranking push failed: %v", err)
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
		}
	}
}

// NotifyRanking queues a ranking frame. It never blocks the voting request;
// frames are dropped when the queue is full.
func (h *RankingHub) NotifyRanking(apartments []models.Apartment) {
	select {
	case h.broadcast <- models.NewApartmentList(apartments):
	default:
		h.log.Warnf("ranking frame dropped, %d queued", len(h.broadcast))
	}
}

func (h *RankingHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("WebSocket upgrade error: %v", err)
		return
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	select {
	case h.register <- conn:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go h.pingLoop(conn)
	go h.readLoop(conn)
}

func (h *RankingHub) leave(conn *websocket.Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// readLoop discards client frames; it only exists to notice disconnects.
func (h *RankingHub) readLoop(conn *websocket.Conn) {
	defer h.leave(conn)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (h *RankingHub) pingLoop(conn *websocket.Conn) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil {
				h.leave(conn)
				return
			}
		case <-h.done:
			return
		}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeDeadline),
	)
}
