package channel

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Unix(1705400000, 0)

func TestParse(t *testing.T) {
	for _, c := range All {
		got, err := Parse(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)

		got, err = Parse(c.Label())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := Parse(" WeChat ")
	require.NoError(t, err)
	assert.Equal(t, WeChat, got)

	_, err = Parse("fax")
	assert.True(t, errors.Is(err, ErrUnknownChannel))
}

func TestStandardize_WeChat(t *testing.T) {
	raw := []byte(`{"FromUserName":"oUser","ToUserName":"gh_acct","CreateTime":"1705382400","MsgType":"voice","Content":"我要点宫保鸡丁","MsgId":"1234567890"}`)

	msg, err := Standardize(WeChat, raw, now)

	require.NoError(t, err)
	assert.Equal(t, "oUser", msg.UserID)
	assert.Equal(t, TypeAudio, msg.Type)
	assert.Equal(t, "我要点宫保鸡丁", msg.Content)
	assert.Equal(t, int64(1705382400), msg.Timestamp)
	assert.Equal(t, "1234567890", msg.Extra["msg_id"])
}

func TestStandardize_PerChannelFields(t *testing.T) {
	cases := []struct {
		channel Channel
		raw     string
		user    string
		content string
		extra   string
	}{
		{Douyin, `{"user_id":"123456","open_id":"op1","content":"明晚7点预订4人桌","timestamp":1705382400}`, "123456", "明晚7点预订4人桌", "open_id"},
		{Meituan, `{"userId":"mt9","orderId":"MT1","content":"送到了吗"}`, "mt9", "送到了吗", "order_id"},
		{Taobao, `{"buyerId":"tb3","tradeId":"T7","content":"有发票吗","timestamp":1705382400}`, "tb3", "有发票吗", "trade_id"},
		{Phone, `{"caller_number":"13800000000","transcribed_text":"订两位","call_id":"c1","duration":42}`, "13800000000", "订两位", "call_id"},
	}
	for _, tc := range cases {
		t.Run(string(tc.channel), func(t *testing.T) {
			msg, err := Standardize(tc.channel, []byte(tc.raw), now)

			require.NoError(t, err)
			assert.Equal(t, tc.channel, msg.Channel)
			assert.Equal(t, TypeText, msg.Type)
			assert.Equal(t, tc.user, msg.UserID)
			assert.Equal(t, tc.content, msg.Content)
			assert.Contains(t, msg.Extra, tc.extra)
			assert.Contains(t, msg.Extra, "original_msg")
			assert.NotZero(t, msg.Timestamp)
		})
	}
}

func TestStandardize_DefaultsTimestamp(t *testing.T) {
	msg, err := Standardize(Meituan, []byte(`{"userId":"mt9","content":"hi"}`), now)

	require.NoError(t, err)
	assert.Equal(t, now.Unix(), msg.Timestamp)
}

func TestStandardize_Errors(t *testing.T) {
	_, err := Standardize(Douyin, []byte(`not json`), now)
	assert.Error(t, err)

	_, err = Standardize(Channel("fax"), []byte(`{}`), now)
	assert.True(t, errors.Is(err, ErrUnknownChannel))
}

func TestFormatReply(t *testing.T) {
	f := Formatter{WeChatAccountID: "gh_restaurant"}
	cases := map[Channel]string{
		WeChat:  `{"ToUserName":"oUser","FromUserName":"gh_restaurant","CreateTime":1705400000,"MsgType":"text","Content":"好的"}`,
		Douyin:  `{"status":"success","reply":"好的","msg_type":"text"}`,
		Meituan: `{"code":0,"msg":"success","data":{"reply":"好的"}}`,
		Taobao:  `{"success":true,"reply":"好的","msg_type":"text"}`,
		Phone:   `{"type":"text_to_speech","text":"好的","voice_type":"xiaoyun"}`,
	}
	for c, want := range cases {
		t.Run(string(c), func(t *testing.T) {
			reply, err := f.FormatReply(c, "oUser", "好的", now)
			require.NoError(t, err)
			b, err := json.Marshal(reply)
			require.NoError(t, err)
			assert.JSONEq(t, want, string(b))
		})
	}
}

func TestEchoResponder(t *testing.T) {
	text, err := EchoResponder{}.Respond(context.Background(), &Message{Channel: Douyin, Content: "你好"})

	require.NoError(t, err)
	assert.Equal(t, "[douyin] received: 你好", text)
}
