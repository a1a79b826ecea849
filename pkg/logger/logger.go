package logger

import (
	"campus_voice_backend/internal/config"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is a no-op logger until InitLogger runs, so packages can log from tests.
var Log = zap.NewNop()

var level = zap.NewAtomicLevelAt(zap.InfoLevel)

func InitLogger(cfg *config.Config) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	filename := cfg.Log.Filename
	if filename == "" {
		filename = "logs/app.log"
	}
	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filename,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	consoleWriter := zapcore.AddSync(os.Stdout)

	SetLevel(cfg)

	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			fileWriter,
			level,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			consoleWriter,
			level,
		),
	)

	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

// SetLevel applies the configured level; debug server mode always logs at debug.
func SetLevel(cfg *config.Config) {
	lvl := zap.InfoLevel
	if cfg.Log.Level != "" {
		if parsed, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
			lvl = parsed
		}
	}
	if cfg.Server.Mode == "debug" {
		lvl = zap.DebugLevel
	}
	level.SetLevel(lvl)
}

func Level() zapcore.Level {
	return level.Level()
}
