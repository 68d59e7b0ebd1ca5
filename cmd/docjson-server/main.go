// Command docjson-server exposes the document store command surface over
// JSON-RPC 2.0, either on stdio or a TCP listener.
package main

import (
	"context"
	"flag"
	"io"
	"net"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"

	"github.com/docjson-io/docjson/store"
)

var (
	version = "0.0.1"
)

func main() {
	addr := flag.String("addr", "", "listen on tcp addr instead of stdio")
	snapshotPath := flag.String("load", "", "load a snapshot file on start")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	st := store.New()
	if *snapshotPath != "" {
		f, err := os.Open(*snapshotPath)
		if err != nil {
			logger.Fatal("open snapshot", zap.Error(err))
		}
		if err := st.Load(f); err != nil {
			f.Close()
			logger.Fatal("load snapshot", zap.Error(err))
		}
		f.Close()
		logger.Info("loaded snapshot", zap.String("path", *snapshotPath))
	}

	srv := &Server{store: st, logger: logger}
	ctx := context.Background()

	if *addr == "" {
		stream := jsonrpc2.NewStream(&stdioReadWriteCloser{
			read:  os.Stdin,
			write: os.Stdout,
		})
		conn := jsonrpc2.NewConn(stream)
		conn.Go(ctx, srv.handle)
		<-conn.Done()
		return
	}

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
	logger.Info("listening", zap.String("addr", *addr), zap.String("version", version))
	for {
		nc, err := ln.Accept()
		if err != nil {
			logger.Error("accept", zap.Error(err))
			return
		}
		conn := jsonrpc2.NewConn(jsonrpc2.NewStream(nc))
		conn.Go(ctx, srv.handle)
	}
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.read.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.write.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	return nil
}
