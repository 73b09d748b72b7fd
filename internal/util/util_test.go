package util

import (
	"bytes"
	"errors"
	"hiphop_roadmap_backend/internal/model"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Username: "bboy", Email: "bboy@example.com"}
	user.ID = 42

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "bboy", claims.Username)
	assert.NotEmpty(t, claims.ID)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	user := &model.User{Username: "bgirl"}
	token, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)
}

func TestSniffVideo(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	_, err := SniffVideo(bytes.NewReader(png), "drill.mp4")
	assert.True(t, errors.Is(err, ErrInvalidFileType))

	// ftyp box 开头的 MP4
	mp4 := append([]byte{0, 0, 0, 0x18}, []byte("ftypmp42\x00\x00\x00\x00mp42isom")...)
	_, err = SniffVideo(bytes.NewReader(mp4), "drill.exe")
	assert.True(t, errors.Is(err, ErrInvalidFileType))

	r := bytes.NewReader(mp4)
	mime, err := SniffVideo(r, "drill.MP4")
	require.NoError(t, err)
	assert.True(t, IsVideo(mime))

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Len(t, rest, len(mp4))
}

func TestParseProbeOutput(t *testing.T) {
	info, err := parseProbeOutput(`{"streams":[{"codec_type":"audio"},{"codec_type":"video","width":1280,"height":720}],"format":{"duration":"121.5"}}`)
	require.NoError(t, err)
	assert.Equal(t, 1280, info.Width)
	assert.Equal(t, 720, info.Height)
	assert.InDelta(t, 121.5, info.Duration, 0.001)

	_, err = parseProbeOutput("not json")
	assert.Error(t, err)
}

func TestDurationLabel(t *testing.T) {
	assert.Equal(t, "", DurationLabel(0))
	assert.Equal(t, "1 min", DurationLabel(12))
	assert.Equal(t, "3 min", DurationLabel(121.5))
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("Learn to **count** beats\n\n- one\n- two")
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>count</strong>")
	assert.Contains(t, html, "<li>one</li>")

	html, err = RenderMarkdown("<script>alert(1)</script>")
	require.NoError(t, err)
	assert.False(t, strings.Contains(html, "<script>"))
}
