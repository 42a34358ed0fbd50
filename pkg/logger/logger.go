package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Init инициализирует глобальный логгер.
// Вызывается один раз при старте приложения (main.go) либо из TestMain.
func Init() {
	Log = logrus.New()

	// Уровень логирования берём из переменной окружения, по умолчанию "info".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// Форматтер: "json" для продакшена и сбора логов, "text" для разработки.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// WithComponent возвращает entry с проставленным полем component.
// Подсистемы логируют через него, чтобы логи можно было фильтровать.
func WithComponent(name string) *logrus.Entry {
	return Log.WithFields(logrus.Fields{"component": name})
}

// Quiet переводит логгер в беззвучный режим. Используется в тестах.
func Quiet() {
	if Log == nil {
		Log = logrus.New()
	}
	Log.SetLevel(logrus.PanicLevel)
}
