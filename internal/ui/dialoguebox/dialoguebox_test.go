package dialoguebox

import (
	"strings"
	"testing"

	"chosenoffset.com/tuxtown/internal/render/rendertest"
)

func TestShowAndHide(t *testing.T) {
	r := &rendertest.Renderer{}
	b := New(r)
	screen := rendertest.NewImage(800, 600)

	b.Draw(screen, 800, 600)
	if len(r.Texts) != 0 || r.Rects != 0 {
		t.Error("Expected a hidden box to draw nothing")
	}

	b.Show("Cat", "Meow")
	if !b.IsVisible() || b.Author() != "Cat" || b.Text() != "Meow" {
		t.Errorf("Unexpected box state: visible=%v author=%q text=%q", b.IsVisible(), b.Author(), b.Text())
	}

	b.Draw(screen, 800, 600)
	got := r.TextsOn()
	if len(got) != 2 || got[0] != "Cat" || got[1] != "Meow" {
		t.Errorf("Expected [Cat Meow], got %v", got)
	}
	if r.Rects != 2 {
		t.Errorf("Expected a filled and stroked panel, got %d rects", r.Rects)
	}

	b.Hide()
	r.Texts = nil
	b.Draw(screen, 800, 600)
	if b.IsVisible() || len(r.Texts) != 0 {
		t.Error("Expected the box to be gone after Hide")
	}
}

func TestShowReplacesContent(t *testing.T) {
	b := New(&rendertest.Renderer{})
	b.Show("Cat", "Meow")
	b.Show("Cat", "Meow again")
	if b.Text() != "Meow again" {
		t.Errorf("Expected the second message, got %q", b.Text())
	}
}

func TestLongMessageWraps(t *testing.T) {
	r := &rendertest.Renderer{}
	b := New(r)
	msg := strings.Repeat("purr ", 40)
	b.Show("Cat", msg)

	if len(b.lines) < 2 {
		t.Fatalf("Expected the message to wrap, got %d line(s)", len(b.lines))
	}
	for _, line := range b.lines {
		if w, _ := r.MeasureText(line, 1); w > b.Width-2*b.padding {
			t.Errorf("line %q is %dpx wide", line, w)
		}
	}
	if b.Text() != strings.TrimSpace(msg) {
		t.Error("Expected wrapping to keep every word")
	}
}

func TestDrawStaysOnSmallScreens(t *testing.T) {
	r := &rendertest.Renderer{}
	b := New(r)
	b.Show("Cat", "Meow")
	b.Draw(rendertest.NewImage(640, 320), 640, 320)

	author := r.Texts[0]
	if author.Y+b.Height-b.padding > 320 {
		t.Errorf("Expected the box inside the screen, author drawn at y=%d", author.Y)
	}
}
