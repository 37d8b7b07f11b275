package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 30, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"This message is longer than thirty characters", 30, "This message is longer than th..."},
		{"", 30, ""},
		{"anything", 0, ""},
		{"héllo wörld, ünïcode önly", 10, "héllo wörl..."},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Truncate(tc.in, tc.max), "in=%q max=%d", tc.in, tc.max)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "Just now"},
		{5 * time.Minute, "5m ago"},
		{59 * time.Minute, "59m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{30 * 24 * time.Hour, "Jan 30, 2026"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, RelativeTime(now.Add(-tc.ago), now), "ago=%v", tc.ago)
	}
	require.Equal(t, "", RelativeTime(time.Time{}, now))
}

func TestMessageList_DefensiveUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"valid list", `[{"id":"m1","role":"user","content":"hi","timestamp":"2026-03-01T12:00:00Z"}]`, 1},
		{"string instead of list", `"oops"`, 0},
		{"object instead of list", `{"id":"m1"}`, 0},
		{"number instead of list", `42`, 0},
		{"malformed entries", `[{"timestamp":12345}]`, 0},
	}
	for _, tc := range cases {
		var msgs MessageList
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &msgs), tc.name)
		require.Len(t, msgs, tc.want, tc.name)
	}
}

func TestSampleConversations_FreshCopies(t *testing.T) {
	a := SampleConversations()
	require.Len(t, a, 3)
	require.Equal(t, "sample-1", a[0].ID, "declared order is stable")

	a[0].Title = "mutated"
	a[0].Messages[0].Content = "mutated"
	b := SampleConversations()
	require.Equal(t, "Tell me a joke", b[0].Title)
	require.Equal(t, "Tell me a joke!", b[0].Messages[0].Content)
}

func TestConversation_LastMessage(t *testing.T) {
	var nilConv *Conversation
	require.Nil(t, nilConv.LastMessage())

	c := &Conversation{}
	require.Nil(t, c.LastMessage())

	c.Messages = MessageList{{ID: "m1"}, {ID: "m2"}}
	require.Equal(t, "m2", c.LastMessage().ID)
}

func TestNewID_Unique(t *testing.T) {
	require.NotEqual(t, NewID(), NewID())
}
