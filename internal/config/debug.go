package config

import "os"

func IsDebug() bool {
	return os.Getenv("BIOPREP_DEBUG") == "1"
}
