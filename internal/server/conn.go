package server

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/jsonrpc2"
)

// A Conn is the part of jsonrpc2.Conn the server needs.
type Conn interface {
	io.Closer

	// Notify sends an asynchronous notification.
	Notify(ctx context.Context, method string, params any, opts ...jsonrpc2.CallOption) error

	// Call sends a request and waits for the client's response.
	Call(ctx context.Context, method string, params, result any, opts ...jsonrpc2.CallOption) error
}

// StdRWC joins stdin and stdout into one stream for jsonrpc2.
type StdRWC struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

// Read implements io.Reader.
func (s StdRWC) Read(p []byte) (int, error) {
	return s.In.Read(p)
}

// Write implements io.Writer.
func (s StdRWC) Write(p []byte) (int, error) {
	return s.Out.Write(p)
}

// Close implements io.Closer.
func (s StdRWC) Close() error {
	if err := s.In.Close(); err != nil {
		return err
	}
	return s.Out.Close()
}

// rpcLogger adapts a charmbracelet logger to jsonrpc2.Logger.
type rpcLogger struct {
	logger *log.Logger
}

// Printf implements jsonrpc2.Logger.
func (l rpcLogger) Printf(format string, args ...any) {
	l.logger.Debugf(format, args...)
}

// LogMessages traces every JSON-RPC message on logger at debug level.
func LogMessages(logger *log.Logger) jsonrpc2.ConnOpt {
	return jsonrpc2.LogMessages(rpcLogger{logger: logger})
}
