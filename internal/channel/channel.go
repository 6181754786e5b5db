// Package channel normalizes customer messages arriving from the ordering
// platforms and shapes replies back into each platform's format.
package channel

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownChannel = errors.New("unknown channel")

type Channel string

const (
	WeChat  Channel = "wechat"
	Douyin  Channel = "douyin"
	Meituan Channel = "meituan"
	Taobao  Channel = "taobao"
	Phone   Channel = "phone"
)

// All lists every supported channel.
var All = []Channel{WeChat, Douyin, Meituan, Taobao, Phone}

var labels = map[Channel]string{
	WeChat:  "微信",
	Douyin:  "抖音",
	Meituan: "美团",
	Taobao:  "淘宝",
	Phone:   "电话",
}

// Label is the name stored in the channel column of the ledger.
func (c Channel) Label() string {
	return labels[c]
}

// Parse accepts a channel code (any case) or its ledger label.
func Parse(s string) (Channel, error) {
	s = strings.TrimSpace(s)
	for _, c := range All {
		if strings.EqualFold(s, string(c)) || s == labels[c] {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChannel, s)
}
