package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init builds the application logger: JSON output with rotation on the
// configured file, duplicated to stderr for local runs.
func Init(file string) *zap.Logger {
	logWriter := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(logWriter), zap.InfoLevel),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zap.InfoLevel),
	)

	return zap.New(core, zap.AddCaller())
}
