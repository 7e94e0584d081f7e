package qrcode

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	goqrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels
const DefaultSize = 256

// URLFor returns the checkout deep link printed on a copy's label
func URLFor(baseURL string, bookID int64) string {
	q := url.Values{}
	q.Set("id", strconv.FormatInt(bookID, 10))
	return strings.TrimRight(baseURL, "/") + "/?" + q.Encode()
}

// PNG encodes content as a QR code image
func PNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := goqrcode.Encode(content, goqrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// WriteFile writes the QR for content to dir/name, creating dir if needed
func WriteFile(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create qr dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := goqrcode.WriteFile(content, goqrcode.Medium, DefaultSize, path); err != nil {
		return "", fmt.Errorf("write qr %s: %w", path, err)
	}
	return path, nil
}

// SafeFileName keeps letters, digits, spaces, '-' and '_' from title,
// turns spaces into underscores and appends ".png".
func SafeFileName(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(b.String(), " ", "_") + ".png"
}
