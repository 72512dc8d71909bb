package wshub

import (
	"aimtrainer/internal/analytics"
	"aimtrainer/internal/config"
	"aimtrainer/internal/gamedata"
)

// Client -> server message types.
const (
	MsgStart    = "start"
	MsgLook     = "look"
	MsgShoot    = "shoot"
	MsgSettings = "settings"
	MsgSync     = "sync"
)

// Server -> client message types. Settings echoes reuse MsgSettings.
const (
	MsgHello  = "hello"
	MsgState  = "state"
	MsgView   = "view"
	MsgResult = "result"
	MsgError  = "error"
)

// ClientMessage is the structure received from clients.
type ClientMessage struct {
	Type     string                `json:"t" msgpack:"t"`
	DX       float64               `json:"dx,omitempty" msgpack:"dx,omitempty"`
	DY       float64               `json:"dy,omitempty" msgpack:"dy,omitempty"`
	Settings *config.SettingsPatch `json:"s,omitempty" msgpack:"s,omitempty"`
}

// ServerMessage is the structure sent to clients. Exactly one payload field
// is set, matching Type.
type ServerMessage struct {
	Type     string                  `json:"t" msgpack:"t"`
	ClientID string                  `json:"id,omitempty" msgpack:"id,omitempty"`
	Room     string                  `json:"room,omitempty" msgpack:"room,omitempty"`
	State    *State                  `json:"state,omitempty" msgpack:"state,omitempty"`
	View     *View                   `json:"view,omitempty" msgpack:"view,omitempty"`
	Result   *analytics.RoundSummary `json:"result,omitempty" msgpack:"result,omitempty"`
	Settings *config.Settings        `json:"settings,omitempty" msgpack:"settings,omitempty"`
	Error    string                  `json:"error,omitempty" msgpack:"error,omitempty"`
}

type TargetState struct {
	ID int     `json:"id" msgpack:"id"`
	X  float64 `json:"x" msgpack:"x"`
	Y  float64 `json:"y" msgpack:"y"`
	Z  float64 `json:"z" msgpack:"z"`
	R  float64 `json:"r" msgpack:"r"`
	C  string  `json:"c" msgpack:"c"`
}

type WallState struct {
	Width    float64 `json:"w" msgpack:"w"`
	Height   float64 `json:"h" msgpack:"h"`
	Distance float64 `json:"d" msgpack:"d"`
}

type State struct {
	Phase         string        `json:"phase" msgpack:"phase"`
	Score         int           `json:"score" msgpack:"score"`
	ShotsFired    int           `json:"shotsFired" msgpack:"shotsFired"`
	TimeRemaining int           `json:"timeRemaining" msgpack:"timeRemaining"`
	Accuracy      float64       `json:"accuracy" msgpack:"accuracy"`
	CanStart      bool          `json:"canStart" msgpack:"canStart"`
	Targets       []TargetState `json:"targets" msgpack:"targets"`
	Wall          WallState     `json:"wall" msgpack:"wall"`
}

type View struct {
	Yaw   float64 `json:"yaw" msgpack:"yaw"`
	Pitch float64 `json:"pitch" msgpack:"pitch"`
}

func NewState(data gamedata.GameData) *State {
	ts := make([]TargetState, 0, len(data.Targets))
	for _, t := range data.Targets {
		ts = append(ts, TargetState{
			ID: t.ID,
			X:  t.Position.X(),
			Y:  t.Position.Y(),
			Z:  t.Position.Z(),
			R:  t.Radius,
			C:  t.Color,
		})
	}
	return &State{
		Phase:         string(data.Phase),
		Score:         data.Score,
		ShotsFired:    data.ShotsFired,
		TimeRemaining: data.TimeRemaining,
		Accuracy:      data.Accuracy,
		CanStart:      data.CanStart,
		Targets:       ts,
		Wall: WallState{
			Width:    data.Wall.Width,
			Height:   data.Wall.Height,
			Distance: data.Wall.Distance,
		},
	}
}

func StateMessage(data gamedata.GameData) ServerMessage {
	return ServerMessage{Type: MsgState, State: NewState(data)}
}

func ViewMessage(yaw, pitch float64) ServerMessage {
	return ServerMessage{Type: MsgView, View: &View{Yaw: yaw, Pitch: pitch}}
}

func SettingsMessage(s config.Settings) ServerMessage {
	return ServerMessage{Type: MsgSettings, Settings: &s}
}

func ResultMessage(r *analytics.RoundSummary) ServerMessage {
	return ServerMessage{Type: MsgResult, Result: r}
}

func ErrorMessage(err error) ServerMessage {
	return ServerMessage{Type: MsgError, Error: err.Error()}
}
