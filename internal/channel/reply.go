package channel

import (
	"context"
	"fmt"
	"time"
)

type WeChatReply struct {
	ToUserName   string `json:"ToUserName"`
	FromUserName string `json:"FromUserName"`
	CreateTime   int64  `json:"CreateTime"`
	MsgType      string `json:"MsgType"`
	Content      string `json:"Content"`
}

type DouyinReply struct {
	Status  string `json:"status"`
	Reply   string `json:"reply"`
	MsgType string `json:"msg_type"`
}

type MeituanReply struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Reply string `json:"reply"`
	} `json:"data"`
}

type TaobaoReply struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply"`
	MsgType string `json:"msg_type"`
}

type PhoneReply struct {
	Type      string `json:"type"`
	Text      string `json:"text"`
	VoiceType string `json:"voice_type"`
}

// Formatter shapes reply text into each platform's reply payload.
type Formatter struct {
	// WeChatAccountID is the official account that sends WeChat replies.
	WeChatAccountID string
	// PhoneVoice selects the text-to-speech voice for phone replies.
	PhoneVoice string
}

func (f Formatter) FormatReply(c Channel, userID, text string, now time.Time) (any, error) {
	switch c {
	case WeChat:
		return WeChatReply{
			ToUserName:   userID,
			FromUserName: f.WeChatAccountID,
			CreateTime:   now.Unix(),
			MsgType:      "text",
			Content:      text,
		}, nil
	case Douyin:
		return DouyinReply{Status: "success", Reply: text, MsgType: "text"}, nil
	case Meituan:
		r := MeituanReply{Code: 0, Msg: "success"}
		r.Data.Reply = text
		return r, nil
	case Taobao:
		return TaobaoReply{Success: true, Reply: text, MsgType: "text"}, nil
	case Phone:
		voice := f.PhoneVoice
		if voice == "" {
			voice = "xiaoyun"
		}
		return PhoneReply{Type: "text_to_speech", Text: text, VoiceType: voice}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, c)
	}
}

// Responder produces the reply text for a customer message.
type Responder interface {
	Respond(ctx context.Context, msg *Message) (string, error)
}

// EchoResponder acknowledges every message by repeating it.
type EchoResponder struct{}

func (EchoResponder) Respond(_ context.Context, msg *Message) (string, error) {
	return fmt.Sprintf("[%s] received: %s", msg.Channel, msg.Content), nil
}
