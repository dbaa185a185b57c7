package client

import (
	"net"
	"time"

	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/routes"
)

// New returns a RemoteClient when the configured server accepts connections,
// otherwise a LocalClient over the default route table.
func New(cfg config.ServerConfig) Client {
	network, addr := "tcp", cfg.Addr
	if cfg.Socket != "" {
		network, addr = "unix", cfg.Socket
	}
	if conn, err := net.DialTimeout(network, addr, 100*time.Millisecond); err == nil {
		conn.Close()
		return NewRemoteClient(cfg)
	}
	return NewLocalClient(routes.Default())
}
