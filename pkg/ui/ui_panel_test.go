package ui

import (
	"testing"
)

func TestSlider_Set(t *testing.T) {
	tests := []struct {
		name    string
		integer bool
		in      float64
		want    float64
	}{
		{"inside", false, 0.25, 0.25},
		{"below", false, -3, 0},
		{"above", false, 7, 2},
		{"rounded", true, 1.6, 2},
		{"rounded down", true, 1.4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlider(0, 0, 100, "v", 0, 2, 1)
			s.Integer = tt.integer
			s.Set(tt.in)
			if s.Value != tt.want {
				t.Errorf("Set(%v) = %v; want %v", tt.in, s.Value, tt.want)
			}
		})
	}
}

func TestUIPanel_Layout(t *testing.T) {
	p := NewUIPanel("Flock", 10, 10, 260, 500)

	p.AddSection("Rules")
	a := p.AddSlider("A", 0, 1, 0.5)
	b := p.AddIntSlider("Count", 1, 10, 4)
	p.EndSection()
	p.AddSection("Actions")
	clicked := false
	btn := p.AddButton("Restart", func() { clicked = true })
	p.EndSection()

	if len(p.Widgets) != 3 || len(p.Labels) != 3 {
		t.Fatalf("got %d widgets, %d labels; want 3", len(p.Widgets), len(p.Labels))
	}
	if !(a.Y < b.Y && b.Y < btn.Y) {
		t.Errorf("widgets must stack downwards: %v %v %v", a.Y, b.Y, btn.Y)
	}
	if !b.Integer || b.Value != 4 {
		t.Errorf("int slider = %v (integer %v)", b.Value, b.Integer)
	}
	if p.sections[0].EndIndex != 2 || p.sections[1].StartIndex != 2 {
		t.Errorf("sections = %+v", p.sections)
	}

	btn.OnClick()
	if !clicked {
		t.Error("button callback not wired")
	}
}
