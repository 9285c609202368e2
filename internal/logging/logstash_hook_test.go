package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLogstashHookShipsJSONLines(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	lines := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		line, _ := bufio.NewReader(conn).ReadString('\n')
		lines <- line
	}()

	hook, err := NewLogstashHook(ln.Addr().String())
	if err != nil {
		t.Fatalf("NewLogstashHook: %v", err)
	}
	defer hook.Close()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(hook)
	logger.WithField("operation", "request_otp").Info("otp issued")

	select {
	case line := <-lines:
		var payload map[string]any
		if err := json.Unmarshal([]byte(line), &payload); err != nil {
			t.Fatalf("expected JSON line, got %q", line)
		}
		if payload["msg"] != "otp issued" || payload["operation"] != "request_otp" {
			t.Fatalf("unexpected payload %v", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for log line")
	}
}

func TestLogstashHookDropsWhileUnreachable(t *testing.T) {
	dials := 0
	hook, err := NewLogstashHook("logstash.invalid:5000", WithRetryInterval(time.Hour))
	if err != nil {
		t.Fatalf("NewLogstashHook: %v", err)
	}
	hook.dial = func(network, addr string, timeout time.Duration) (net.Conn, error) {
		dials++
		return nil, errors.New("connection refused")
	}

	entry := logrus.NewEntry(logrus.New())
	entry.Message = "first"
	if err := hook.Fire(entry); err != nil {
		t.Fatalf("Fire should swallow errors, got %v", err)
	}
	entry.Message = "second"
	if err := hook.Fire(entry); err != nil {
		t.Fatalf("Fire should swallow errors, got %v", err)
	}
	if dials != 1 {
		t.Fatalf("expected a single dial inside the retry window, got %d", dials)
	}
}

func TestNewLogstashHookRequiresAddress(t *testing.T) {
	if _, err := NewLogstashHook("  "); err == nil {
		t.Fatalf("expected error for empty address")
	}
}
