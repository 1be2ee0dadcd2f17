package auth

import "time"

type Config struct {
	// SigningKey signs issued bearer tokens. The process refuses to start
	// without it.
	SigningKey string `env:"JWT_SECRET_KEY,required"`
	// Issuer is the service label shown in authenticator apps.
	Issuer string `env:"TOTP_ISSUER" envDefault:"authsvc"`
	// TokenTTL is the lifetime of tokens issued on completed logins.
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"10m"`
	// CodeWindow is how many 30-second steps of clock drift to accept on
	// either side of the current one. The default tolerates ±60 seconds.
	CodeWindow int `env:"TOTP_CODE_WINDOW" envDefault:"2"`
}
