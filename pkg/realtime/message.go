package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/petegordon/mferoll-sub000/pkg/bet"
)

// Message types exchanged on the real-time channel
const (
	MsgTypeConnected    = "connected"
	MsgTypeSubscribe    = "subscribe"
	MsgTypeSubscribed   = "subscribed"
	MsgTypeUnsubscribe  = "unsubscribe"
	MsgTypeUnsubscribed = "unsubscribed"
	MsgTypePing         = "ping"
	MsgTypePong         = "pong"
	MsgTypeError        = "error"
	MsgTypeBetPlaced    = string(bet.EventBetPlaced)
	MsgTypeBetSettled   = string(bet.EventBetSettled)
)

var errMissingType = errors.New("message type is required")

// ClientMessage is a control message sent by a subscriber
type ClientMessage struct {
	Type    string `json:"type"`
	Address string `json:"address,omitempty"`
}

// ServerMessage is a frame pushed to a subscriber
type ServerMessage struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Address   string `json:"address,omitempty"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// BetPlacedData is the payload of a bet_placed frame
type BetPlacedData struct {
	RequestID   string `json:"requestId"`
	Player      string `json:"player"`
	BetType     uint8  `json:"betType"`
	Prediction  uint8  `json:"prediction"`
	Amount      string `json:"amount"`
	TxHash      string `json:"txHash,omitempty"`
	BlockNumber uint64 `json:"blockNumber,omitempty"`
}

// BetSettledData is the payload of a bet_settled frame
type BetSettledData struct {
	RequestID   string `json:"requestId"`
	Player      string `json:"player"`
	Die1        uint8  `json:"die1"`
	Die2        uint8  `json:"die2"`
	Won         bool   `json:"won"`
	Payout      string `json:"payout"`
	TxHash      string `json:"txHash,omitempty"`
	BlockNumber uint64 `json:"blockNumber,omitempty"`
}

// ParseClientMessage decodes a subscriber frame
func ParseClientMessage(data []byte) (*ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Type == "" {
		return nil, errMissingType
	}
	return &msg, nil
}

// ToJSON encodes the message
func (m *ServerMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// NewConnectedMessage greets a new subscriber
func NewConnectedMessage() *ServerMessage {
	return &ServerMessage{Type: MsgTypeConnected, Timestamp: nowMillis()}
}

// NewPongMessage answers a ping
func NewPongMessage() *ServerMessage {
	return &ServerMessage{Type: MsgTypePong, Timestamp: nowMillis()}
}

// NewSubscribedMessage acknowledges an address filter
func NewSubscribedMessage(address string) *ServerMessage {
	return &ServerMessage{Type: MsgTypeSubscribed, Address: address}
}

// NewUnsubscribedMessage acknowledges a cleared filter
func NewUnsubscribedMessage() *ServerMessage {
	return &ServerMessage{Type: MsgTypeUnsubscribed}
}

// NewErrorMessage reports a rejected subscriber frame
func NewErrorMessage(message string) *ServerMessage {
	return &ServerMessage{Type: MsgTypeError, Message: message}
}

// NewEventMessage converts an applied game event into its wire frame
func NewEventMessage(ev bet.Event) (*ServerMessage, error) {
	switch ev.Type {
	case bet.EventBetPlaced:
		p := ev.Placement
		if p == nil {
			return nil, fmt.Errorf("%s event without placement", ev.Type)
		}
		return &ServerMessage{Type: MsgTypeBetPlaced, Data: BetPlacedData{
			RequestID:   p.RequestID,
			Player:      p.Player,
			BetType:     p.BetType,
			Prediction:  p.Prediction,
			Amount:      p.Amount,
			TxHash:      p.TxHash,
			BlockNumber: p.BlockNumber,
		}}, nil
	case bet.EventBetSettled:
		s := ev.Settlement
		if s == nil {
			return nil, fmt.Errorf("%s event without settlement", ev.Type)
		}
		return &ServerMessage{Type: MsgTypeBetSettled, Data: BetSettledData{
			RequestID:   s.RequestID,
			Player:      s.Player,
			Die1:        s.Die1,
			Die2:        s.Die2,
			Won:         s.Won,
			Payout:      s.Payout,
			TxHash:      s.TxHash,
			BlockNumber: s.BlockNumber,
		}}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", ev.Type)
	}
}
