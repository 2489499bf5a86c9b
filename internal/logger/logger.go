package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "stall-marketplace"

// Logger stays a no-op until Init runs, and under ENVIRONMENT=test.
var Logger = zap.NewNop()

// Init builds the process logger. Production emits sampled JSON at info;
// development emits colored console lines at debug.
func Init(environment string) error {
	var config zap.Config

	switch environment {
	case "test":
		return nil
	case "production":
		config = zap.NewProductionConfig()
		config.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	default:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "msg"
	config.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	config.InitialFields = map[string]interface{}{
		"service":     serviceName,
		"environment": environment,
	}

	built, err := config.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return err
	}

	Logger = built
	zap.ReplaceGlobals(Logger)

	return nil
}

func Sync() {
	_ = Logger.Sync()
}

// ForRequest scopes log lines to one HTTP request.
func ForRequest(requestID string, fields ...zap.Field) *zap.Logger {
	return Logger.With(append([]zap.Field{zap.String("request_id", requestID)}, fields...)...)
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}
