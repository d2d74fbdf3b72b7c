package config

type Config struct {
	DatabasePath string
}
