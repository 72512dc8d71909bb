package server

import (
	"aimtrainer/internal/rooms"
	"aimtrainer/internal/wshub"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	room := s.roomFromPath(w, r)
	if room == nil {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols: wshub.Subprotocols(),
	})
	if err != nil {
		log.Printf("[WS] accept error: %v\n", err)
		return
	}
	defer conn.CloseNow()

	client := wshub.NewClient(uuid.New().String(), conn, wshub.CodecFor(conn.Subprotocol()))
	room.Hub.Register(client)
	defer room.Hub.Unregister(client.ID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go client.WritePump(ctx)

	log.Printf("[WS] %s joined %s (%s)", client.ID, room.Code, client.Codec.Name())
	room.Hub.Send(client.ID, wshub.ServerMessage{Type: wshub.MsgHello, ClientID: client.ID, Room: room.Code})
	s.sync(room, client.ID)

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && !errors.Is(err, context.Canceled) {
				log.Printf("[WS] %s read error: %v\n", client.ID, err)
			}
			return
		}
		if typ != client.Codec.MessageType() {
			room.Hub.Send(client.ID, wshub.ErrorMessage(fmt.Errorf("expected %s frames", client.Codec.Name())))
			continue
		}
		var msg wshub.ClientMessage
		if err := client.Codec.Unmarshal(data, &msg); err != nil {
			room.Hub.Send(client.ID, wshub.ErrorMessage(fmt.Errorf("decoding message: %w", err)))
			continue
		}
		room.Touch()
		s.dispatch(room, client.ID, msg)
	}
}

// dispatch applies one client command. State changes reach the socket through
// the room's event bridge; only direct replies are sent here.
func (s *Server) dispatch(room *rooms.Room, clientID string, msg wshub.ClientMessage) {
	switch msg.Type {
	case wshub.MsgStart:
		if err := room.Game.Start(); err != nil {
			room.Hub.Send(clientID, wshub.ErrorMessage(err))
		}
	case wshub.MsgLook:
		room.Game.Look(msg.DX, msg.DY)
		room.Hub.Send(clientID, wshub.ViewMessage(room.Game.View()))
	case wshub.MsgShoot:
		room.Game.Shoot()
	case wshub.MsgSettings:
		if msg.Settings == nil {
			room.Hub.Send(clientID, wshub.ErrorMessage(errors.New("settings message without settings")))
			return
		}
		room.Game.ApplySettings(*msg.Settings)
	case wshub.MsgSync:
		s.sync(room, clientID)
	default:
		room.Hub.Send(clientID, wshub.ErrorMessage(fmt.Errorf("unknown message type %q", msg.Type)))
	}
}

// sync sends one client everything it needs to redraw from scratch.
func (s *Server) sync(room *rooms.Room, clientID string) {
	data := room.Game.Get()
	room.Hub.Send(clientID, wshub.SettingsMessage(data.Settings))
	room.Hub.Send(clientID, wshub.ViewMessage(data.Yaw, data.Pitch))
	room.Hub.Send(clientID, wshub.StateMessage(data))
	if data.Result != nil {
		room.Hub.Send(clientID, wshub.ResultMessage(data.Result))
	}
}
