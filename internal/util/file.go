package util

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// sniffLen http.DetectContentType 最多读取的字节数
const sniffLen = 512

// SniffVideo 依次校验扩展名与文件头，读取后把 r 重置到开头
func SniffVideo(r io.ReadSeeker, filename string) (string, error) {
	ext := VideoExtension(filename)
	if !slices.Contains(AllowedVideoExtensions, ext) {
		return "", fmt.Errorf("%w: extension %q", ErrInvalidFileType, ext)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	mimeType := http.DetectContentType(head[:n])
	if !IsVideo(mimeType) {
		return mimeType, fmt.Errorf("%w: %s", ErrInvalidFileType, mimeType)
	}
	return mimeType, nil
}

func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeVideo)
}

// VideoExtension 返回小写扩展名，如 ".mp4"
func VideoExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
