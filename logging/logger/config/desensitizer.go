package config

import "github.com/spf13/viper"

// Desensitization holds desensitization settings
type Desensitization struct {
	Enabled         bool     `json:"enabled" yaml:"enabled"`
	SensitiveFields []string `json:"sensitive_fields" yaml:"sensitive_fields"`
	CustomPatterns  []string `json:"custom_patterns" yaml:"custom_patterns"`
	MaskChar        string   `json:"mask_char" yaml:"mask_char"`
	FixedMaskLength int      `json:"fixed_mask_length" yaml:"fixed_mask_length"`
	ExactFieldMatch bool     `json:"exact_field_match" yaml:"exact_field_match"`
}

// Default sensitive field patterns
var defaultSensitiveFields = []string{
	"password", "passwd", "pwd",
	"token", "authorization",
	"secret", "api_key", "apikey",
}

// Default mask character
const defaultMaskChar = "*"

// Default fixed mask length
const defaultFixedMaskLength = 6

// DefaultDesensitization returns the settings used when the section is absent.
func DefaultDesensitization() *Desensitization {
	return &Desensitization{
		Enabled:         true,
		SensitiveFields: defaultSensitiveFields,
		MaskChar:        defaultMaskChar,
		FixedMaskLength: defaultFixedMaskLength,
	}
}

// getDesensitizationConfigs reads and returns desensitization configuration
func getDesensitizationConfigs(v *viper.Viper) *Desensitization {
	if !v.IsSet("logger.desensitization") {
		return DefaultDesensitization()
	}

	config := &Desensitization{
		Enabled:         v.GetBool("logger.desensitization.enabled"),
		SensitiveFields: v.GetStringSlice("logger.desensitization.sensitive_fields"),
		CustomPatterns:  v.GetStringSlice("logger.desensitization.custom_patterns"),
		MaskChar:        v.GetString("logger.desensitization.mask_char"),
		FixedMaskLength: v.GetInt("logger.desensitization.fixed_mask_length"),
		ExactFieldMatch: v.GetBool("logger.desensitization.exact_field_match"),
	}

	// Apply defaults for missing values
	if !v.IsSet("logger.desensitization.enabled") {
		config.Enabled = true
	}
	if len(config.SensitiveFields) == 0 {
		config.SensitiveFields = defaultSensitiveFields
	}
	if config.MaskChar == "" {
		config.MaskChar = defaultMaskChar
	}
	if config.FixedMaskLength == 0 {
		config.FixedMaskLength = defaultFixedMaskLength
	}

	return config
}
