package cli

import (
	"os"
	"strings"
)

func envKey(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

func lookupEnv(key string) (string, bool) {
	return os.LookupEnv(envKey(key))
}
