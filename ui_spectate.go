// SPDX-License-Identifier: Apache-2.0
// Copyright 2020,2021 Marcus Soll
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
)

const (
	// URIWatch is the websocket endpoint streaming one JSON snapshot per draw.
	URIWatch = "/watch"
	// URIState returns the latest snapshot as JSON.
	URIState = "/state"

	spectatorBuffer = 8
	writeTimeout    = 1 * time.Second
)

// spectateUI serves the game to read-only spectators over websockets.
type spectateUI struct {
	Addr string
	UI   UI

	hub      *spectatorHub
	server   *http.Server
	listener net.Listener
}

func (sp *spectateUI) Initialise() error {
	var err error
	sp.hub = newSpectatorHub()

	router := way.NewRouter()
	router.HandleFunc("GET", URIWatch, sp.hub.handleWatch())
	router.HandleFunc("GET", URIState, sp.hub.handleState())

	sp.listener, err = net.Listen("tcp", sp.Addr)
	if err != nil {
		return err
	}
	sp.server = &http.Server{Handler: router}
	go func() {
		err := sp.server.Serve(sp.listener)
		if err != nil && err != http.ErrServerClosed {
			log.WithError(err).Errorln("spectator server stopped")
		}
	}()
	log.WithField("addr", sp.listener.Addr().String()).Infoln("spectator server listening")

	if sp.UI != nil {
		return sp.UI.Initialise()
	}
	return nil
}

// ListenAddr returns the address the server listens on. Only valid after Initialise.
func (sp *spectateUI) ListenAddr() string {
	if sp.listener == nil {
		return ""
	}
	return sp.listener.Addr().String()
}

func (sp *spectateUI) Draw(s Snapshot) error {
	if sp.hub != nil {
		sp.hub.broadcast(s)
	}
	if sp.UI != nil {
		return sp.UI.Draw(s)
	}
	return nil
}

func (sp *spectateUI) Finish(s Snapshot) error {
	var err error
	if sp.UI != nil {
		err = sp.UI.Finish(s)
	}

	if sp.hub != nil {
		sp.hub.broadcast(s)
		sp.hub.closeAll()
	}
	if sp.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		newErr := sp.server.Shutdown(ctx)
		if newErr != nil && err == nil {
			err = newErr
		}
	}
	return err
}

func (sp *spectateUI) Wait() {
	if sp.UI != nil {
		sp.UI.Wait()
	}
}

type spectator struct {
	conn *websocket.Conn
	send chan Snapshot
	gone chan struct{}
}

type spectatorHub struct {
	upgrader *websocket.Upgrader

	mu      sync.Mutex
	clients map[*spectator]struct{}
	last    *Snapshot
	closed  bool
}

func newSpectatorHub() *spectatorHub {
	return &spectatorHub{
		upgrader: &websocket.Upgrader{},
		clients:  make(map[*spectator]struct{}),
	}
}

// broadcast queues s for every spectator. Slow spectators lose their oldest snapshot.
func (h *spectatorHub) broadcast(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &s
	if h.closed {
		return
	}
	for c := range h.clients {
		offer(c.send, s)
	}
}

func offer(c chan Snapshot, s Snapshot) {
	for {
		select {
		case c <- s:
			return
		default:
		}
		select {
		case <-c:
		default:
		}
	}
}

func (h *spectatorHub) add(c *spectator) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.last != nil {
		offer(c.send, *h.last)
	}
	return true
}

func (h *spectatorHub) remove(c *spectator) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// closeAll ends all streams. No spectator can join afterwards.
func (h *spectatorHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *spectatorHub) handleWatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.WithError(err).Warnln("spectator upgrade failed")
			return
		}
		defer conn.Close()

		c := &spectator{
			conn: conn,
			send: make(chan Snapshot, spectatorBuffer),
			gone: make(chan struct{}),
		}
		if !h.add(c) {
			conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"), time.Now().Add(writeTimeout))
			return
		}
		defer h.remove(c)
		log.WithField("remote", r.RemoteAddr).Infoln("spectator joined")

		go c.readLoop()

		for {
			select {
			case s, ok := <-c.send:
				if !ok {
					conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"), time.Now().Add(writeTimeout))
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				err := conn.WriteJSON(s)
				if err != nil {
					log.WithError(err).Debugln("spectator write failed")
					return
				}
			case <-c.gone:
				log.WithField("remote", r.RemoteAddr).Infoln("spectator left")
				return
			}
		}
	}
}

// readLoop discards incoming messages so control frames are processed.
func (c *spectator) readLoop() {
	defer close(c.gone)
	for {
		_, _, err := c.conn.NextReader()
		if err != nil {
			return
		}
	}
}

func (h *spectatorHub) handleState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		last := h.last
		h.mu.Unlock()

		if last == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(last)
		if err != nil {
			log.WithError(err).Warnln("encoding state failed")
		}
	}
}
