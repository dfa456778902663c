package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
)

// TLSConfig enables HTTPS on the API listener.
type TLSConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	CertFile   string `mapstructure:"cert_file"`
	KeyFile    string `mapstructure:"key_file"`
	ClientCA   string `mapstructure:"client_ca"`
	EnableMTLS bool   `mapstructure:"enable_mtls"`
	MaxVersion string `mapstructure:"max_version"`
}

// BuildServerTLSConfig returns nil when TLS is disabled.
func BuildServerTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(filepath.Clean(cfg.CertFile), filepath.Clean(cfg.KeyFile))
	if err != nil {
		return nil, fmt.Errorf("load X509 key pair: %w", err)
	}

	config := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		MaxVersion:   tlsVersion(cfg.MaxVersion),
	}

	if cfg.ClientCA != "" {
		caBytes, err := os.ReadFile(filepath.Clean(cfg.ClientCA)) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("read client CA: %w", err)
		}
		pool := x509.NewCertPool()
		if ok := pool.AppendCertsFromPEM(caBytes); !ok {
			return nil, fmt.Errorf("failed to append client CA certificate from %s", cfg.ClientCA)
		}
		config.ClientCAs = pool
	}

	if cfg.EnableMTLS {
		if config.ClientCAs == nil {
			return nil, fmt.Errorf("mutual TLS requires server.tls.client_ca")
		}
		config.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return config, nil
}

func tlsVersion(version string) uint16 {
	switch version {
	case "TLS12":
		return tls.VersionTLS12
	default:
		return tls.VersionTLS13
	}
}
