package logger

import (
	"regexp"
	"strings"

	"github.com/ncobase/qeonaru/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// Desensitizer handles sensitive data masking in log fields
type Desensitizer struct {
	config   *config.Desensitization
	patterns []*regexp.Regexp
}

// NewDesensitizer creates a new desensitizer instance
func NewDesensitizer(cfg *config.Desensitization) *Desensitizer {
	if cfg == nil {
		cfg = config.DefaultDesensitization()
	}
	d := &Desensitizer{
		config:   cfg,
		patterns: make([]*regexp.Regexp, 0, len(cfg.CustomPatterns)),
	}

	// Invalid patterns are skipped
	for _, pattern := range cfg.CustomPatterns {
		if regex, err := regexp.Compile(pattern); err == nil {
			d.patterns = append(d.patterns, regex)
		}
	}

	return d
}

// DesensitizeFields processes log fields and masks sensitive data
func (d *Desensitizer) DesensitizeFields(fields logrus.Fields) logrus.Fields {
	if !d.config.Enabled || len(fields) == 0 {
		return fields
	}

	result := make(logrus.Fields, len(fields))
	for key, value := range fields {
		result[key] = d.desensitizeValue(key, value, 0)
	}
	return result
}

// desensitizeValue processes a single value, descending into maps
func (d *Desensitizer) desensitizeValue(key string, value any, depth int) any {
	if value == nil || depth > 10 {
		return value
	}

	if d.isSensitiveField(key) {
		return d.mask()
	}

	switch v := value.(type) {
	case string:
		return d.desensitizeString(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = d.desensitizeValue(k, item, depth+1)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, item := range v {
			if d.isSensitiveField(k) {
				out[k] = d.mask()
				continue
			}
			out[k] = d.desensitizeString(item)
		}
		return out
	default:
		return value
	}
}

// isSensitiveField checks if field name contains sensitive keywords
func (d *Desensitizer) isSensitiveField(fieldName string) bool {
	if fieldName == "" {
		return false
	}

	lowerName := strings.ToLower(fieldName)
	for _, sensitiveField := range d.config.SensitiveFields {
		lowerSensitiveField := strings.ToLower(sensitiveField)
		if d.config.ExactFieldMatch {
			if lowerName == lowerSensitiveField {
				return true
			}
		} else if strings.Contains(lowerName, lowerSensitiveField) {
			return true
		}
	}
	return false
}

// desensitizeString applies pattern-based desensitization to strings
func (d *Desensitizer) desensitizeString(str string) string {
	if str == "" {
		return str
	}

	result := str
	for _, pattern := range d.patterns {
		result = pattern.ReplaceAllString(result, d.mask())
	}
	return result
}

func (d *Desensitizer) mask() string {
	return strings.Repeat(d.config.MaskChar, d.config.FixedMaskLength)
}
