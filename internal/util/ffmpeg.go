package util

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoInfo 存储视频信息
type VideoInfo struct {
	Duration float64 `json:"duration"` // 视频时长（秒）
	Width    int     `json:"width"`
	Height   int     `json:"height"`
}

// GetVideoInfo 使用ffmpeg-go库获取视频信息，需要本机安装 ffprobe
func GetVideoInfo(videoPath string) (*VideoInfo, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return nil, fmt.Errorf("video file not found: %w", err)
	}

	jsonOutput, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return nil, fmt.Errorf("probe video: %w", err)
	}

	return parseProbeOutput(jsonOutput)
}

func parseProbeOutput(jsonOutput string) (*VideoInfo, error) {
	var result struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}

	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		return nil, fmt.Errorf("parse probe output: %w", err)
	}

	info := &VideoInfo{}
	for _, stream := range result.Streams {
		if stream.CodecType == "video" {
			info.Width = stream.Width
			info.Height = stream.Height
			break
		}
	}

	duration, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err == nil {
		info.Duration = duration
	}
	return info, nil
}

// DurationLabel 将秒数格式化为技能卡片上的时长标签，如 "12 min"
func DurationLabel(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	return fmt.Sprintf("%d min", int(math.Ceil(seconds/60)))
}
