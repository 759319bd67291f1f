package config

import (
	"github.com/spf13/viper"
)

// Config configuration struct
type Config struct {
	Level           int              `json:"level" yaml:"level"`
	Format          string           `json:"format" yaml:"format"`
	Output          string           `json:"output" yaml:"output"`
	OutputFile      string           `json:"output_file" yaml:"output_file"`
	Desensitization *Desensitization `json:"desensitization" yaml:"desensitization"`
}

// Default logger level is logrus.InfoLevel
const defaultLevel = 4

// GetConfig returns the logger configuration
func GetConfig(v *viper.Viper) *Config {
	level := defaultLevel
	if v.IsSet("logger.level") {
		level = v.GetInt("logger.level")
	}

	format := v.GetString("logger.format")
	if format == "" {
		format = "json"
	}

	output := v.GetString("logger.output")
	if output == "" {
		output = "stdout"
	}

	return &Config{
		Level:           level,
		Format:          format,
		Output:          output,
		OutputFile:      v.GetString("logger.output_file"),
		Desensitization: getDesensitizationConfigs(v),
	}
}
