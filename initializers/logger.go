package initializers

import (
	"strings"

	"go.uber.org/zap"
)

// Log is usable before InitLogger runs; it discards everything until then.
var Log = zap.NewNop().Sugar()

func InitLogger(mode string) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	Log = logger.Sugar()
}

func SyncLogger() {
	_ = Log.Sync()
}
