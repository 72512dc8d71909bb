package server

import (
	"aimtrainer/internal/config"
	"aimtrainer/internal/rooms"
	"aimtrainer/internal/session"
	"aimtrainer/internal/wshub"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

type Server struct {
	Rooms     *rooms.Store
	Gatherer  prometheus.Gatherer
	StaticDir string
}

type roomResponse struct {
	Code string `json:"code"`
	*wshub.State
	Settings config.Settings `json:"settings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] encode error: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// roomFromPath resolves {code} and writes a 404 when it does not exist.
func (s *Server) roomFromPath(w http.ResponseWriter, r *http.Request) *rooms.Room {
	code := mux.Vars(r)["code"]
	room := s.Rooms.Get(code)
	if room == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("room %s not found", code))
		return nil
	}
	room.Touch()
	return room
}

func snapshot(room *rooms.Room) roomResponse {
	return roomResponse{
		Code:     room.Code,
		State:    wshub.NewState(room.Game.Get()),
		Settings: room.Game.Settings(),
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.StaticDir, "index.html"))
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	ownerID := uuid.New().String()
	room, err := s.Rooms.Create(ownerID)
	if err != nil {
		log.Println(err)
		writeError(w, http.StatusInternalServerError, "failed to create room")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "room_code",
		Value:    room.Code,
		Path:     "/",
		HttpOnly: true,
	})
	writeJSON(w, http.StatusCreated, snapshot(room))
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room := s.roomFromPath(w, r)
	if room == nil {
		return
	}
	writeJSON(w, http.StatusOK, snapshot(room))
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := s.Rooms.Delete(code); err != nil {
		if errors.Is(err, rooms.ErrRoomNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	room := s.roomFromPath(w, r)
	if room == nil {
		return
	}
	res := room.Game.Result()
	if res == nil {
		writeError(w, http.StatusNotFound, "no finished round yet")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	room := s.roomFromPath(w, r)
	if room == nil {
		return
	}
	if err := room.Game.Start(); err != nil {
		if errors.Is(err, session.ErrCannotStart) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, snapshot(room))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"rooms":  len(s.Rooms.List()),
	})
}
