package config

import (
	"time"

	"github.com/spf13/viper"
)

// Server http server config struct
type Server struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func getServerConfig(v *viper.Viper) *Server {
	return &Server{
		Host:            v.GetString("server.host"),
		Port:            v.GetInt("server.port"),
		ReadTimeout:     getDurationOrDefault(v, "server.read_timeout", 15*time.Second),
		WriteTimeout:    getDurationOrDefault(v, "server.write_timeout", 15*time.Second),
		ShutdownTimeout: getDurationOrDefault(v, "server.shutdown_timeout", 30*time.Second),
	}
}
