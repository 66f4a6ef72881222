package config

import (
	"fmt"
)

// LookupStrategy selects how sendMessage resolves the sender and
// receiver against the user store.
type LookupStrategy string

const (
	LookupById       LookupStrategy = "id"
	LookupByUsername LookupStrategy = "username"
)

type Config struct {
	ServerAddr     string
	DatabaseDSN    string
	AllowedOrigins []string
	UserLookup     LookupStrategy
}

func NewConfig(serverAddr, databaseDSN, userLookup string, allowedOrigins []string) (*Config, error) {
	if serverAddr == "" {
		return nil, fmt.Errorf("server address cannot be empty")
	}
	if databaseDSN == "" {
		return nil, fmt.Errorf("database DSN cannot be empty")
	}

	strategy := LookupStrategy(userLookup)
	switch strategy {
	case "":
		strategy = LookupByUsername
	case LookupById, LookupByUsername:
	default:
		return nil, fmt.Errorf("unknown user lookup strategy %q", userLookup)
	}

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return &Config{
		ServerAddr:     serverAddr,
		DatabaseDSN:    databaseDSN,
		AllowedOrigins: allowedOrigins,
		UserLookup:     strategy,
	}, nil
}
