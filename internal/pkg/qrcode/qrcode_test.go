package qrcode

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLFor(t *testing.T) {
	assert.Equal(t, "https://aicon-library.streamlit.app/?id=12", URLFor("https://aicon-library.streamlit.app/", 12))
	assert.Equal(t, "http://localhost:3000/?id=7", URLFor("http://localhost:3000", 7))
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Ruby the red fairy", "Ruby_the_red_fairy.png"},
		{"Rebecca the rock 'n' roll fairy", "Rebecca_the_rock_n_roll_fairy.png"},
		{"The secret diary of Adrian Mole Aged 13 3/4", "The_secret_diary_of_Adrian_Mole_Aged_13_34.png"},
		{"St. Clare's.. The First Year", "St_Clares_The_First_Year.png"},
		{"Blood, Bones and Body Bits", "Blood_Bones_and_Body_Bits.png"},
		{"Kitty-at_St", "Kitty-at_St.png"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFileName(tt.title))
		})
	}
}

func TestPNG(t *testing.T) {
	png, err := PNG(URLFor("https://example.com", 1), 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "physical_qr_codes")
	path, err := WriteFile(dir, SafeFileName("Ugly Bugs"), "https://example.com/?id=2")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Ugly_Bugs.png"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
