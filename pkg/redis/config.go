package redis

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds the connection settings of a Client. Timeouts stay short: every request
// guarded by the rate limiter waits on Redis.
type Config struct {
	Host     string
	Port     int
	Password string
	Database int

	MinIdleConns int
	PoolSize     int
	MaxRetries   int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func NewRedisConfig() *Config {
	return &Config{
		Host:         "localhost",
		Port:         6379,
		MinIdleConns: 2,
		PoolSize:     50,
		MaxRetries:   1,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
}

func (c *Config) WithHost(host string) *Config {
	c.Host = host
	return c
}

func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

func (c *Config) WithPassword(password string) *Config {
	c.Password = password
	return c
}

func (c *Config) WithDatabase(database int) *Config {
	c.Database = database
	return c
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) Validate() error {
	switch {
	case c.Host == "":
		return errors.New("redis host is required")
	case c.Port < 1 || c.Port > 65535:
		return fmt.Errorf("redis port %d is out of range", c.Port)
	case c.Database < 0:
		return fmt.Errorf("redis database %d is negative", c.Database)
	case c.MinIdleConns < 0 || c.PoolSize < 0 || c.MaxRetries < 0:
		return errors.New("redis pool sizes and retries must be non-negative")
	case c.DialTimeout < 0 || c.ReadTimeout < 0 || c.WriteTimeout < 0:
		return errors.New("redis timeouts must be non-negative")
	}
	return nil
}
