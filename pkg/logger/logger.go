package logger

import (
	"fmt"

	"go.uber.org/zap"
)

var (
	// до Init пишем в no-op, чтобы библиотечные пакеты и тесты не падали
	infoLogger  = zap.NewNop()
	fatalLogger = zap.NewNop()
)

var serviceName = "default"

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

// Init поднимает продакшен-конфиг zap. Вызывается один раз из main.
func Init() error {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("zap init: %w", err)
	}
	infoLogger = l
	fatalLogger = l
	return nil
}

func Sync() {
	_ = infoLogger.Sync()
}

func Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	infoLogger.With(
		zap.String("service", serviceName),
	).Info(msg)
}

func Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	infoLogger.With(
		zap.String("service", serviceName),
	).Error(msg)
}

func Fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fatalLogger.With(
		zap.String("service", serviceName),
	).Fatal(msg)
}
