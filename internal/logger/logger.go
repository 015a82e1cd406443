package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New はGO_ENVとLOG_LEVELからzapのロガーを作る。
// dev は人が読む形式、それ以外はJSON。
func New(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "" || env == "dev" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}
