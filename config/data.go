package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DriverMongoDB stores documents in MongoDB.
	DriverMongoDB = "mongodb"
	// DriverMemory keeps documents in process memory, for development.
	DriverMemory = "memory"

	defaultDatabase = "Qeonaru"
)

// Data represents the data configuration
type Data struct {
	Driver  string
	MongoDB *MongoDB
}

// MongoDB mongodb config struct
type MongoDB struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// getDataConfig returns data config
func getDataConfig(v *viper.Viper) *Data {
	return &Data{
		Driver: v.GetString("data.driver"),
		MongoDB: &MongoDB{
			URI:            v.GetString("data.mongodb.uri"),
			Database:       getStringOrDefault(v, "data.mongodb.database", defaultDatabase),
			ConnectTimeout: getDurationOrDefault(v, "data.mongodb.connect_timeout", 10*time.Second),
		},
	}
}
