package helpers

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestHighlightSegments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		term string
		want []HighlightSegment
	}{
		{name: "empty text", text: "", term: "pad", want: nil},
		{name: "blank term", text: "Brake Pad", term: " ", want: []HighlightSegment{{Text: "Brake Pad"}}},
		{
			name: "case insensitive",
			text: "Pad and PAD",
			term: "pad",
			want: []HighlightSegment{
				{Text: "Pad", Match: true},
				{Text: " and "},
				{Text: "PAD", Match: true},
			},
		},
		{
			name: "multibyte",
			text: "刹车片 Pad",
			term: "车片",
			want: []HighlightSegment{
				{Text: "刹"},
				{Text: "车片", Match: true},
				{Text: " Pad"},
			},
		},
		{name: "no match", text: "Disc", term: "pad", want: []HighlightSegment{{Text: "Disc"}}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := HighlightSegments(tc.text, tc.term)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected segments (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSafeLink(t *testing.T) {
	t.Parallel()

	if !IsSafeLink("https://example.com/p/1") {
		t.Errorf("expected https link to be safe")
	}
	if IsSafeLink("javascript:alert(1)") {
		t.Errorf("expected javascript link to be neutralised")
	}
	if IsSafeLink("   ") {
		t.Errorf("expected blank link to be unsafe")
	}
	if IsSafeLink("data:text/html,<script>alert(1)</script>") {
		t.Errorf("expected data link to be unsafe")
	}
	if got := SafeLink(" https://example.com/p?a=1&b=2 "); got != "https://example.com/p?a=1&b=2" {
		t.Errorf("expected safe link kept verbatim, got %q", got)
	}
	if got := SafeLink("javascript:alert(1)"); got == "javascript:alert(1)" {
		t.Errorf("expected unsafe link to be neutralised, got %q", got)
	}
}

func TestTextComponentEscapes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := TextComponent(`<a href="x">`).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if got := buf.String(); got != "&lt;a href=&#34;x&#34;&gt;" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestByteSize(t *testing.T) {
	t.Parallel()

	if got := ByteSize(512); got != "512 B" {
		t.Errorf("unexpected size %s", got)
	}
	if got := ByteSize(1536); got != "1.5 KiB" {
		t.Errorf("unexpected size %s", got)
	}
	if got := Date(time.Date(2025, 1, 2, 3, 4, 0, 0, time.Local), "2006-01-02 15:04"); got != "2025-01-02 03:04" {
		t.Errorf("unexpected date %s", got)
	}
}
