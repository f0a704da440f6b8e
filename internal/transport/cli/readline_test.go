package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/internal/service/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	got []chat.Message
}

func (f *fakeChat) Handle(_ context.Context, msg chat.Message) core.Exchange {
	f.got = append(f.got, msg)
	return core.Exchange{Input: msg.Text, Response: "pong"}
}

func TestReadLine_HandleLine(t *testing.T) {
	fc := &fakeChat{}
	r := &ReadLine{chat: fc, user: "alice"}
	var out bytes.Buffer

	assert.True(t, r.handleLine(context.Background(), &out, "   "))
	assert.Empty(t, fc.got)

	assert.True(t, r.handleLine(context.Background(), &out, "ping"))
	require.Len(t, fc.got, 1)
	assert.Equal(t, chat.Message{SessionID: "cli-local", User: "alice", Text: "ping", Transport: "cli"}, fc.got[0])
	assert.Contains(t, out.String(), "pong")

	assert.False(t, r.handleLine(context.Background(), &out, " exit "))
	assert.Len(t, fc.got, 1)
}
