package raster

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		img  Image
		want error
	}{
		{"ok", New(3, 2), nil},
		{"zero width", Image{Width: 0, Height: 2}, ErrInvalidDimensions},
		{"zero height", Image{Width: 2, Height: 0}, ErrInvalidDimensions},
		{"negative", Image{Width: -1, Height: 2, Pix: make([]byte, 8)}, ErrInvalidDimensions},
		{"short buffer", Image{Width: 2, Height: 2, Pix: make([]byte, 15)}, ErrBufferSizeMismatch},
		{"long buffer", Image{Width: 2, Height: 2, Pix: make([]byte, 17)}, ErrBufferSizeMismatch},
		{"nil buffer", Image{Width: 1, Height: 1}, ErrBufferSizeMismatch},
		{"product overflows", Image{Width: math.MaxInt32, Height: math.MaxInt32}, ErrBufferSizeMismatch},
		{"times four overflows", Image{Width: math.MaxInt/4 + 1, Height: 1}, ErrBufferSizeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.img.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_DimensionsCheckedFirst(t *testing.T) {
	err := Image{Width: 0, Height: 4, Pix: make([]byte, 3)}.Validate()
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("got %v, want ErrInvalidDimensions", err)
	}
}

func TestPlaneClamped(t *testing.T) {
	p := NewPlane(3, 2)
	for i := range p.Pix {
		p.Pix[i] = float64(i)
	}
	cases := []struct {
		x, y int
		want float64
	}{
		{0, 0, 0}, {2, 1, 5}, {5, 0, 2}, {-3, 1, 3}, {1, 9, 4}, {9, 9, 5},
	}
	for _, c := range cases {
		if got := p.Clamped(c.x, c.y); got != c.want {
			t.Errorf("Clamped(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestFromImage_RoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	for y := 20; y < 22; y++ {
		for x := 10; x < 13; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 200})
		}
	}
	r := FromImage(src)
	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}
	if r.Width != 3 || r.Height != 2 {
		t.Fatalf("dims %dx%d", r.Width, r.Height)
	}
	got := r.ToImage().NRGBAAt(2, 1)
	want := color.NRGBA{R: 12, G: 21, B: 7, A: 200}
	if got != want {
		t.Errorf("pixel (2,1) = %v, want %v", got, want)
	}
	if !r.HasAlpha() {
		t.Error("alpha 200 not detected")
	}
}

func TestNew_Opaque(t *testing.T) {
	if New(4, 4).HasAlpha() {
		t.Error("New should be opaque")
	}
}
