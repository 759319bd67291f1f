// Package config loads the application configuration with Viper.
//
// Configuration is read from a YAML file (config.yaml by default) and
// overridden by environment variables prefixed with QEONARU_, where dots
// become underscores:
//
//	QEONARU_SERVER_PORT=8080
//	QEONARU_DATA_MONGODB_URI=mongodb://localhost:27017
//
// The variables MONGODB_URL and JWT_SECRET are honored as well.
//
// Example YAML:
//
//	app_name: qeonaru
//	run_mode: release
//	server:
//	  host: 0.0.0.0
//	  port: 3000
//	logger:
//	  level: 4
//	  format: json
//	  output: stdout
//	data:
//	  driver: mongodb
//	  mongodb:
//	    uri: mongodb://localhost:27017
//	    database: Qeonaru
//	auth:
//	  jwt:
//	    secret: change-me
//	    expire: 48h
//	  bcrypt_cost: 10
//	cors:
//	  allow_origins: ["*"]
//
// A missing file is not an error when no explicit path is given; defaults
// and the environment then provide every value.
package config
