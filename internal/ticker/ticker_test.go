package ticker

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		maxN int
		want []string
	}{
		{
			name: "dollar prefixed symbol",
			text: "What about $AAPL today?",
			maxN: 1,
			want: []string{"AAPL"},
		},
		{
			name: "blacklisted words only",
			text: "I think the AND is fine",
			maxN: 3,
			want: nil,
		},
		{
			name: "class suffix",
			text: "BRK.A is interesting",
			maxN: 1,
			want: []string{"BRK.A"},
		},
		{
			name: "bare symbol",
			text: "should I buy TLT",
			maxN: 1,
			want: []string{"TLT"},
		},
		{
			name: "truncated to maxN",
			text: "TLT vs QQQ vs IWM",
			maxN: 2,
			want: []string{"TLT", "QQQ"},
		},
		{
			name: "first seen order with duplicates",
			text: "QQQ then TLT then QQQ again",
			maxN: 5,
			want: []string{"QQQ", "TLT"},
		},
		{
			name: "adjacent letters disqualify",
			text: "ANDroid is not a ticker, neither is ABCDEFGH",
			maxN: 5,
			want: nil,
		},
		{
			name: "adjacent digits disqualify",
			text: "error code AB12",
			maxN: 5,
			want: nil,
		},
		{
			name: "lowercase prose ignored",
			text: "nothing shouting here",
			maxN: 5,
			want: nil,
		},
		{
			name: "empty input",
			text: "",
			maxN: 1,
			want: nil,
		},
		{
			name: "korean text around symbol",
			text: "TLT 사도 돼?",
			maxN: 1,
			want: []string{"TLT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text, tt.maxN)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Extract(%q, %d) = %v, want %v", tt.text, tt.maxN, got, tt.want)
			}
			if len(got) > tt.maxN {
				t.Fatalf("result length %d exceeds maxN %d", len(got), tt.maxN)
			}
		})
	}
}
