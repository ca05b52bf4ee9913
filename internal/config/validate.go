package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost must be in [4, 31] (got %d)", c.Auth.PasswordHashCost)
	}

	if err := c.validateStorage(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := c.Upload.validate(); err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	if c.Redis.Enabled() && c.Redis.StatsTTL <= 0 {
		return fmt.Errorf("redis.stats_ttl must be > 0 (got %v)", c.Redis.StatsTTL)
	}

	if c.RateLimit.AuthPerMinute < 0 || c.RateLimit.SubmitPerMinute < 0 {
		return fmt.Errorf("rate_limit values must be >= 0")
	}

	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for driver %q", DriverPostgres)
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo.uri is required for driver %q", DriverMongo)
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("mongo.database is required for driver %q", DriverMongo)
		}
	default:
		return fmt.Errorf("unknown driver %q (want %q or %q)", c.Storage.Driver, DriverPostgres, DriverMongo)
	}
	return nil
}

func (u *UploadConfig) validate() error {
	if u.MaxFiles <= 0 {
		return fmt.Errorf("max_files must be > 0 (got %d)", u.MaxFiles)
	}
	if u.MaxFileBytes <= 0 {
		return fmt.Errorf("max_file_bytes must be > 0 (got %d)", u.MaxFileBytes)
	}
	if u.MaxRequestBytes < u.MaxFileBytes {
		return fmt.Errorf("max_request_bytes (%d) must be >= max_file_bytes (%d)", u.MaxRequestBytes, u.MaxFileBytes)
	}
	return nil
}
