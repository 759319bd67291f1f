package config

import (
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenExpire = "48h"
	defaultBcryptCost  = 10
)

// Auth auth config struct
type Auth struct {
	JWT        *JWT
	BcryptCost int
}

// getAuth returns the auth config.
func getAuth(v *viper.Viper) *Auth {
	cost := getIntOrDefault(v, "auth.bcrypt_cost", defaultBcryptCost)
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultBcryptCost
	}
	return &Auth{
		JWT:        getJWT(v),
		BcryptCost: cost,
	}
}

// JWT jwt config struct
type JWT struct {
	Secret string
	Expire time.Duration
}

// getJWT returns the jwt config.
func getJWT(v *viper.Viper) *JWT {
	return &JWT{
		Secret: v.GetString("auth.jwt.secret"),
		Expire: getDurationOrDefault(v, "auth.jwt.expire", 48*time.Hour),
	}
}
