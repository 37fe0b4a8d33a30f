package messaging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Morgane2t/decent-workshop-4/pkg/config"
	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
)

const (
	defaultCertsDir   = "certs"
	defaultClientCert = "client-cert.pem"
	defaultClientKey  = "client-key.pem"
	defaultCACert     = "rootCA.pem"
)

// GetNATSConnection creates a NATS connection. In production the connection is
// mutually authenticated with client certificates and basic credentials.
func GetNATSConnection() (*nats.Conn, error) {
	cfg := config.GetConfig()

	opts := []nats.Option{
		nats.MaxReconnects(-1), // retry forever
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectHandler(func(nc *nats.Conn) {
			logger.Warn("Disconnected from NATS")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	if cfg.Environment == config.Production {
		clientCert, clientKey, caCert, err := resolveTLSCertPaths(cfg.NATs.TLS)
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			nats.ClientCert(clientCert, clientKey),
			nats.RootCAs(caCert),
			nats.UserInfo(cfg.NATs.Username, cfg.NATs.Password),
		)
	}

	return nats.Connect(cfg.NATs.URL, opts...)
}

func resolveTLSCertPaths(tls *config.TLSConfig) (clientCert, clientKey, caCert string, err error) {
	if tls != nil {
		clientCert, clientKey, caCert = tls.ClientCert, tls.ClientKey, tls.CACert
	}
	if clientCert == "" {
		clientCert = filepath.Join(defaultCertsDir, defaultClientCert)
	}
	if clientKey == "" {
		clientKey = filepath.Join(defaultCertsDir, defaultClientKey)
	}
	if caCert == "" {
		caCert = filepath.Join(defaultCertsDir, defaultCACert)
	}

	for name, path := range map[string]string{
		"client certificate": clientCert,
		"client key":         clientKey,
		"CA certificate":     caCert,
	} {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return "", "", "", fmt.Errorf("%s not found at %s", name, path)
		}
	}

	return clientCert, clientKey, caCert, nil
}
