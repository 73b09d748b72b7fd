package logger

import (
	"hiphop_roadmap_backend/internal/config"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 在 InitLogger 之前是 Nop，测试无需初始化
var Log = zap.NewNop()

// level 由配置热更新调整
var level = zap.NewAtomicLevelAt(zap.InfoLevel)

func InitLogger(cfg *config.Config) {
	SetLevel(cfg)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotatingFile(cfg.Log.File)), level),
	}
	// release 模式只写文件，由日志采集处理
	if cfg.Server.Mode != "release" {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), level))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)).
		With(zap.String("service", "hiphop-roadmap"))
}

func rotatingFile(filename string) *lumberjack.Logger {
	if filename == "" {
		filename = "logs/app.log"
	}
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    50, // MB
		MaxBackups: 7,
		MaxAge:     28,
		Compress:   true,
	}
}

// SetLevel 按 log.level 设置级别；debug 模式至少输出 debug
func SetLevel(cfg *config.Config) {
	lvl := zap.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.Log.Level); cfg.Log.Level != "" && err == nil {
		lvl = parsed
	}
	if cfg.Server.Mode == "debug" {
		lvl = zap.DebugLevel
	}
	level.SetLevel(lvl)
}

func Level() zapcore.Level {
	return level.Level()
}
