// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bufio"
	"net"
	"net/http"
)

// accessRecorder wraps the writer of one relay request and keeps what the
// access log reports. Websocket peers on /gun hijack the connection, so the
// recorder must stay hijackable.
type accessRecorder struct {
	http.ResponseWriter

	status   int
	size     int
	upgraded bool
}

func newAccessRecorder(w http.ResponseWriter) *accessRecorder {
	return &accessRecorder{ResponseWriter: w}
}

// WriteHeader forwards only the first status code.
func (a *accessRecorder) WriteHeader(code int) {
	if a.status != 0 {
		return
	}
	a.status = code
	a.ResponseWriter.WriteHeader(code)
}

func (a *accessRecorder) Write(b []byte) (int, error) {
	if a.status == 0 {
		a.WriteHeader(http.StatusOK)
	}
	n, err := a.ResponseWriter.Write(b)
	a.size += n
	return n, err
}

// Hijack marks the request as a websocket upgrade.
func (a *accessRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, rw, err := http.NewResponseController(a.ResponseWriter).Hijack()
	if err != nil {
		return nil, nil, err
	}
	a.upgraded = true
	if a.status == 0 {
		a.status = http.StatusSwitchingProtocols
	}
	return conn, rw, nil
}

func (a *accessRecorder) Unwrap() http.ResponseWriter {
	return a.ResponseWriter
}

// code is the status the client saw. A handler that wrote nothing got an
// implicit 200 from net/http.
func (a *accessRecorder) code() int {
	if a.status == 0 {
		return http.StatusOK
	}
	return a.status
}
