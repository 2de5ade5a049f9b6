package model

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestImageToTensorGeometry(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 7))
	data := imageToTensor(img)
	if want := inputSize * inputSize * channels; len(data) != want {
		t.Fatalf("len(data) = %d, want %d", len(data), want)
	}
}

func TestImageToTensorPixelMapping(t *testing.T) {
	tests := []struct {
		name string
		fill color.RGBA
		want float32
	}{
		{"black maps to -1", color.RGBA{0, 0, 0, 255}, -1},
		{"white maps to +1", color.RGBA{255, 255, 255, 255}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 4, 4))
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					img.SetRGBA(x, y, tt.fill)
				}
			}
			data := imageToTensor(img)
			for i, v := range data[:channels] {
				if math.Abs(float64(v)-float64(tt.want)) > 1e-3 {
					t.Fatalf("data[%d] = %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}
