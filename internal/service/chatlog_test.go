package service

import (
	"strings"
	"testing"

	"stock-chat/internal/model"
)

func TestSessionName(t *testing.T) {
	tests := []struct {
		name     string
		messages []model.ChatMessage
		want     string
	}{
		{
			name: "single user message",
			messages: []model.ChatMessage{
				{Role: "user", Content: "should I buy TLT"},
			},
			want: "should I buy TLT",
		},
		{
			name: "first three user utterances joined",
			messages: []model.ChatMessage{
				{Role: "user", Content: "one"},
				{Role: "assistant", Content: "reply"},
				{Role: "user", Content: "two"},
				{Role: "user", Content: "three"},
				{Role: "user", Content: "four"},
			},
			want: "one / two / three",
		},
		{
			name: "whitespace collapsed",
			messages: []model.ChatMessage{
				{Role: "user", Content: "  hello\n\t world  "},
			},
			want: "hello world",
		},
		{
			name:     "no user content falls back to placeholder",
			messages: []model.ChatMessage{{Role: "assistant", Content: "hi"}},
			want:     "대화",
		},
		{
			name:     "empty conversation",
			messages: nil,
			want:     "대화",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SessionName(tt.messages); got != tt.want {
				t.Fatalf("SessionName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionNameCappedAt80Runes(t *testing.T) {
	long := strings.Repeat("가", 120)
	got := SessionName([]model.ChatMessage{{Role: "user", Content: long}})
	if r := []rune(got); len(r) != 80 {
		t.Fatalf("got %d runes, want 80", len(r))
	}
}

func TestRenderContext(t *testing.T) {
	blob := `{"messages":[{"role":"user","content":"should I buy TLT"},{"role":"assistant","content":""}],"response":"it depends","model":"qwen3:4b","last_user":"should I buy TLT"}`
	got := renderContext(blob)
	want := "user: should I buy TLT\nassistant: it depends"
	if got != want {
		t.Fatalf("renderContext = %q, want %q", got, want)
	}
}

func TestRenderContextEmptyBlob(t *testing.T) {
	if got := renderContext("not json"); got != "대화 없음" {
		t.Fatalf("renderContext = %q, want placeholder", got)
	}
	if got := renderContext(`{"messages":[]}`); got != "대화 없음" {
		t.Fatalf("renderContext = %q, want placeholder", got)
	}
}
