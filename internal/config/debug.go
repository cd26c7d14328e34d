package config

import "os"

func IsDebug() bool {
	return os.Getenv("CINE_DEBUG") == "1"
}
