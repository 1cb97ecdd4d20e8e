package kiss

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"ax25modem/config"

	"github.com/charmbracelet/log"
)

// Client represents an active connection to a KISS TNC
type Client struct {
	conn    io.ReadWriteCloser // The underlying connection (TCP, Serial, etc.)
	port    byte
	logger  *log.Logger
	decoder *Decoder

	mu  sync.Mutex
	buf []byte
}

// Connect establishes a connection to a TNC based on the interface config.
// A device containing ":" is dialed over TCP, anything else is opened as a
// serial port.
func Connect(conf config.InterfaceConfig, logger *log.Logger) (*Client, error) {
	if !strings.EqualFold(conf.Type, "KISS") {
		return nil, fmt.Errorf("unknown interface type: %s", conf.Type)
	}

	var (
		conn io.ReadWriteCloser
		err  error
	)
	if strings.Contains(conf.Device, ":") {
		logger.Info("Attempting KISS TCP connection", "address", conf.Device)
		conn, err = connectTCP(conf.Device)
	} else {
		logger.Info("Attempting KISS serial connection", "device", conf.Device, "baud", conf.Baud)
		conn, err = connectSerial(conf.Device, conf.Baud)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Connected to KISS TNC", "device", conf.Device, "port", conf.Port)
	return NewClient(conn, conf.Port, logger), nil
}

// NewClient wraps an established connection.
func NewClient(conn io.ReadWriteCloser, port byte, logger *log.Logger) *Client {
	return &Client{
		conn:    conn,
		port:    port,
		logger:  logger,
		decoder: NewDecoder(conn),
	}
}

// Send writes one AX.25 frame, without FCS, as a KISS data frame.
func (c *Client) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buf = AppendEncode(c.buf[:0], c.port, frame)
	if _, err := c.conn.Write(c.buf); err != nil {
		return fmt.Errorf("failed to write KISS frame: %w", err)
	}
	c.logger.Debug("sent KISS frame", "port", c.port, "bytes", len(frame))
	return nil
}

// Receive blocks until the TNC delivers a data frame and returns its AX.25
// contents. Frames for other ports are dropped.
func (c *Client) Receive() ([]byte, error) {
	for {
		port, data, err := c.decoder.ReadDataFrame()
		if errors.Is(err, io.ErrNoProgress) {
			// Serial reads time out with (0, nil), which bufio gives up on
			continue
		}
		if err != nil {
			return nil, err
		}
		if port != c.port {
			c.logger.Debug("ignoring KISS frame for another port", "port", port)
			continue
		}
		return data, nil
	}
}

// Close disconnects the client
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
