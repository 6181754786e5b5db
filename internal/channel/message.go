package channel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type MessageType string

const (
	TypeText  MessageType = "text"
	TypeImage MessageType = "image"
	TypeAudio MessageType = "audio"
	TypeVideo MessageType = "video"
)

// Message is the platform-independent form of an inbound customer message.
type Message struct {
	Channel   Channel        `json:"channel"`
	UserID    string         `json:"user_id"`
	Type      MessageType    `json:"message_type"`
	Content   string         `json:"content"`
	Timestamp int64          `json:"timestamp"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// unixTime decodes epoch seconds sent either as a number or a numeric string.
type unixTime int64

func (t *unixTime) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*t = 0
		return nil
	}
	n, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("timestamp %s: %w", b, err)
	}
	*t = unixTime(n)
	return nil
}

type wechatInbound struct {
	FromUserName string   `json:"FromUserName"`
	ToUserName   string   `json:"ToUserName"`
	CreateTime   unixTime `json:"CreateTime"`
	MsgType      string   `json:"MsgType"`
	Content      string   `json:"Content"`
	MsgID        string   `json:"MsgId"`
}

type douyinInbound struct {
	UserID    string   `json:"user_id"`
	OpenID    string   `json:"open_id"`
	Content   string   `json:"content"`
	Timestamp unixTime `json:"timestamp"`
}

type meituanInbound struct {
	UserID    string   `json:"userId"`
	OrderID   string   `json:"orderId"`
	Content   string   `json:"content"`
	Timestamp unixTime `json:"timestamp"`
}

type taobaoInbound struct {
	BuyerID   string   `json:"buyerId"`
	TradeID   string   `json:"tradeId"`
	Content   string   `json:"content"`
	Timestamp unixTime `json:"timestamp"`
}

type phoneInbound struct {
	CallerNumber    string   `json:"caller_number"`
	TranscribedText string   `json:"transcribed_text"`
	CallTime        unixTime `json:"call_time"`
	CallID          string   `json:"call_id"`
	Duration        float64  `json:"duration"`
}

var wechatTypes = map[string]MessageType{
	"text":  TypeText,
	"image": TypeImage,
	"voice": TypeAudio,
	"video": TypeVideo,
}

// Standardize decodes a raw platform payload into a Message. A missing
// timestamp is filled with now.
func Standardize(c Channel, raw []byte, now time.Time) (*Message, error) {
	msg := &Message{Channel: c, Type: TypeText}
	var ts unixTime

	switch c {
	case WeChat:
		var in wechatInbound
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("decode %s message: %w", c, err)
		}
		msg.UserID, msg.Content, ts = in.FromUserName, in.Content, in.CreateTime
		if t, ok := wechatTypes[in.MsgType]; ok {
			msg.Type = t
		}
		msg.Extra = map[string]any{"msg_id": in.MsgID}
	case Douyin:
		var in douyinInbound
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("decode %s message: %w", c, err)
		}
		msg.UserID, msg.Content, ts = in.UserID, in.Content, in.Timestamp
		msg.Extra = map[string]any{"open_id": in.OpenID}
	case Meituan:
		var in meituanInbound
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("decode %s message: %w", c, err)
		}
		msg.UserID, msg.Content, ts = in.UserID, in.Content, in.Timestamp
		msg.Extra = map[string]any{"order_id": in.OrderID}
	case Taobao:
		var in taobaoInbound
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("decode %s message: %w", c, err)
		}
		msg.UserID, msg.Content, ts = in.BuyerID, in.Content, in.Timestamp
		msg.Extra = map[string]any{"trade_id": in.TradeID}
	case Phone:
		var in phoneInbound
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("decode %s message: %w", c, err)
		}
		msg.UserID, msg.Content, ts = in.CallerNumber, in.TranscribedText, in.CallTime
		msg.Extra = map[string]any{"call_id": in.CallID, "duration": in.Duration}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, c)
	}

	msg.Timestamp = int64(ts)
	if msg.Timestamp == 0 {
		msg.Timestamp = now.Unix()
	}
	msg.Extra["original_msg"] = json.RawMessage(raw)
	return msg, nil
}
