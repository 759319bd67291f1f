package config

import "github.com/spf13/viper"

// CORS cross-origin config struct
type CORS struct {
	AllowOrigins []string
}

func getCORSConfig(v *viper.Viper) *CORS {
	return &CORS{
		AllowOrigins: v.GetStringSlice("cors.allow_origins"),
	}
}
