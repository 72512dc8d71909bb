package wshub

import (
	"encoding/json"

	"github.com/coder/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	ProtoJSON    = "aimtrainer.json"
	ProtoMsgPack = "aimtrainer.msgpack"
)

// Codec encodes messages for one websocket subprotocol.
type Codec interface {
	Name() string
	MessageType() websocket.MessageType
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var (
	JSON    Codec = jsonCodec{}
	MsgPack Codec = msgpackCodec{}
)

// Subprotocols lists the accepted subprotocols in server preference order.
func Subprotocols() []string {
	return []string{ProtoMsgPack, ProtoJSON}
}

// CodecFor picks the codec for a negotiated subprotocol. Anything unknown,
// including no subprotocol at all, gets JSON.
func CodecFor(subprotocol string) Codec {
	if subprotocol == ProtoMsgPack {
		return MsgPack
	}
	return JSON
}

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return ProtoJSON }
func (jsonCodec) MessageType() websocket.MessageType { return websocket.MessageText }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                       { return ProtoMsgPack }
func (msgpackCodec) MessageType() websocket.MessageType { return websocket.MessageBinary }
func (msgpackCodec) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
