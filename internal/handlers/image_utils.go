package handlers

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"strconv"

	"github.com/disintegration/imaging"
)

// Fixed output dimensions: category icons are square, treatment covers and
// case photos share the wide format.
const (
	iconSize    = 512
	coverWidth  = 800
	coverHeight = 600
)

// readFormImage pulls the first uploaded file under key. A missing file is
// not an error; the caller treats it as "nothing staged".
func readFormImage(r *http.Request, key string) ([]byte, string, error) {
	if r.MultipartForm == nil {
		return nil, "", nil
	}
	headers, ok := r.MultipartForm.File[key]
	if !ok || len(headers) == 0 {
		return nil, "", nil
	}

	file, err := headers[0].Open()
	if err != nil {
		return nil, "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("read uploaded file: %w", err)
	}
	return data, headers[0].Filename, nil
}

// cropRectFromForm reads the optional crop_x/crop_y/crop_w/crop_h fields the
// admin editor sends alongside the file. All four must be present and the
// rectangle non-empty; otherwise a centered crop is used.
func cropRectFromForm(r *http.Request) (image.Rectangle, bool) {
	x, errX := strconv.Atoi(r.FormValue("crop_x"))
	y, errY := strconv.Atoi(r.FormValue("crop_y"))
	w, errW := strconv.Atoi(r.FormValue("crop_w"))
	h, errH := strconv.Atoi(r.FormValue("crop_h"))
	if errX != nil || errY != nil || errW != nil || errH != nil || w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

// cropToSize applies the crop rectangle (or a centered crop when absent),
// scales to the fixed width×height, and re-encodes as JPEG.
func cropToSize(data []byte, rect image.Rectangle, hasRect bool, width, height int) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if hasRect {
		src = imaging.Crop(src, rect)
		if src.Bounds().Empty() {
			return nil, fmt.Errorf("crop rectangle outside image bounds")
		}
	}

	out := imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
