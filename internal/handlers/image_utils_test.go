package handlers

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func testImagePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestCropToSizeProducesRequestedDimensions(t *testing.T) {
	data := testImagePNG(t, 1000, 900)

	out, err := cropToSize(data, image.Rectangle{}, false, coverWidth, coverHeight)
	if err != nil {
		t.Fatalf("cropToSize returned error: %v", err)
	}

	decoded, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("output format = %q, want jpeg", format)
	}
	b := decoded.Bounds()
	if b.Dx() != coverWidth || b.Dy() != coverHeight {
		t.Errorf("output dimensions = %dx%d, want %dx%d", b.Dx(), b.Dy(), coverWidth, coverHeight)
	}
}

func TestCropToSizeWithRect(t *testing.T) {
	data := testImagePNG(t, 1000, 900)

	out, err := cropToSize(data, image.Rect(100, 100, 612, 612), true, iconSize, iconSize)
	if err != nil {
		t.Fatalf("cropToSize returned error: %v", err)
	}

	decoded, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != iconSize || b.Dy() != iconSize {
		t.Errorf("output dimensions = %dx%d, want %dx%d", b.Dx(), b.Dy(), iconSize, iconSize)
	}
}

func TestCropToSizeRejectsGarbage(t *testing.T) {
	if _, err := cropToSize([]byte("not an image"), image.Rectangle{}, false, coverWidth, coverHeight); err == nil {
		t.Fatal("expected decode error for non-image data")
	}
}

func TestCropRectFromForm(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   image.Rectangle
		wantOK bool
	}{
		{
			"all four fields",
			url.Values{"crop_x": {"10"}, "crop_y": {"20"}, "crop_w": {"100"}, "crop_h": {"50"}},
			image.Rect(10, 20, 110, 70),
			true,
		},
		{
			"missing field",
			url.Values{"crop_x": {"10"}, "crop_y": {"20"}, "crop_w": {"100"}},
			image.Rectangle{},
			false,
		},
		{
			"zero width",
			url.Values{"crop_x": {"10"}, "crop_y": {"20"}, "crop_w": {"0"}, "crop_h": {"50"}},
			image.Rectangle{},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.values.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			rect, ok := cropRectFromForm(r)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && rect != tt.want {
				t.Errorf("rect = %v, want %v", rect, tt.want)
			}
		})
	}
}

func TestReadFormImage(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", "cover.png")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte("image bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	r := httptest.NewRequest(http.MethodPost, "/", &body)
	r.Header.Set("Content-Type", w.FormDataContentType())
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}

	data, name, err := readFormImage(r, "image")
	if err != nil {
		t.Fatalf("readFormImage returned error: %v", err)
	}
	if string(data) != "image bytes" || name != "cover.png" {
		t.Fatalf("got (%q, %q)", data, name)
	}

	data, name, err = readFormImage(r, "missing")
	if err != nil {
		t.Fatalf("missing key should not error, got %v", err)
	}
	if data != nil || name != "" {
		t.Fatalf("missing key should yield nothing, got (%q, %q)", data, name)
	}
}
