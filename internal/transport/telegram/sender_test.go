package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   []string
	}{
		{name: "empty", text: "", maxLen: 10, want: nil},
		{name: "fits", text: "hello", maxLen: 10, want: []string{"hello"}},
		{name: "hard cut", text: "abcdefghij", maxLen: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "newline preferred", text: "abcdef\nghijkl", maxLen: 10, want: []string{"abcdef", "ghijkl"}},
		{name: "early newline ignored", text: "a\nbcdefghijkl", maxLen: 9, want: []string{"a\nbcdefgh", "ijkl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitMessage(tt.text, tt.maxLen))
		})
	}
}

func TestSplitMessage_KeepsRunesWhole(t *testing.T) {
	text := strings.Repeat("é", 50)

	chunks := splitMessage(text, 7)
	assert.Equal(t, text, strings.Join(chunks, ""))
	for _, c := range chunks {
		assert.True(t, utf8.ValidString(c), c)
		assert.LessOrEqual(t, len(c), 7)
	}
}

func TestSenderName(t *testing.T) {
	assert.Equal(t, "guest", senderName(nil))
	assert.Equal(t, "alice", senderName(&tele.User{ID: 1, Username: "alice"}))
	assert.Equal(t, "42", senderName(&tele.User{ID: 42}))
}

type sent struct {
	text string
	html bool
}

type fakeMessenger struct {
	sent       []sent
	rejectHTML bool
}

func (m *fakeMessenger) Send(_ tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	html := false
	for _, o := range opts {
		if o == tele.ModeHTML {
			html = true
		}
	}
	if html && m.rejectHTML {
		return nil, errors.New("telegram: can't parse entities (400)")
	}
	m.sent = append(m.sent, sent{text: what.(string), html: html})
	return &tele.Message{}, nil
}

func TestSender_SendReply(t *testing.T) {
	to := &tele.User{ID: 1}

	t.Run("html", func(t *testing.T) {
		m := &fakeMessenger{}
		err := newSender(m).sendReply(context.Background(), to, "**Commands**")

		assert.NoError(t, err)
		assert.Equal(t, []sent{{text: "<strong>Commands</strong>", html: true}}, m.sent)
	})

	t.Run("plain text when html is rejected", func(t *testing.T) {
		m := &fakeMessenger{rejectHTML: true}
		err := newSender(m).sendReply(context.Background(), to, "**Commands**")

		assert.NoError(t, err)
		assert.Equal(t, []sent{{text: "**Commands**"}}, m.sent)
	})

	t.Run("empty reply", func(t *testing.T) {
		m := &fakeMessenger{}
		assert.NoError(t, newSender(m).sendReply(context.Background(), to, "  "))
		assert.Empty(t, m.sent)
	})

	t.Run("long reply is split", func(t *testing.T) {
		m := &fakeMessenger{}
		long := strings.Repeat("line of scraped text\n", 400)
		assert.NoError(t, newSender(m).sendReply(context.Background(), to, long))

		assert.Greater(t, len(m.sent), 1)
		for _, s := range m.sent {
			assert.LessOrEqual(t, len(s.text), maxMessageLen)
		}
	})
}
