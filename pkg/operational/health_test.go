/*
 * Copyright (C) 2022 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package operational

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/netobserv/vibration-gcn/pkg/config"
	"github.com/stretchr/testify/require"
)

const (
	readyPath = "/ready"
	livePath  = "/live"
)

func TestNewHealthServer(t *testing.T) {
	failing := healthcheck.Check(func() error { return errors.New("pipeline is not running") })
	passing := healthcheck.Check(func() error { return nil })

	tests := []struct {
		name       string
		check      healthcheck.Check
		port       string
		statusCode int
	}{
		{name: "pipeline running", check: passing, port: "7000", statusCode: 200},
		{name: "pipeline not running", check: failing, port: "7001", statusCode: 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := config.Options{Health: config.Health{Address: "127.0.0.1", Port: tt.port}}
			server := NewHealthServer(&opts, tt.check, tt.check)
			require.NotNil(t, server)
			defer func() { _ = server.Shutdown(context.Background()) }()
			expectedAddr := net.JoinHostPort("127.0.0.1", tt.port)
			require.Equal(t, expectedAddr, server.Addr)

			client := &http.Client{}
			readyURL := url.URL{Scheme: "http", Host: expectedAddr, Path: readyPath}
			var resp *http.Response
			var err error
			require.Eventually(t, func() bool {
				resp, err = client.Get(readyURL.String())
				return err == nil
			}, 5*time.Second, 50*time.Millisecond)
			_ = resp.Body.Close()
			require.Equal(t, tt.statusCode, resp.StatusCode)

			liveURL := url.URL{Scheme: "http", Host: expectedAddr, Path: livePath}
			resp, err = client.Get(liveURL.String())
			require.NoError(t, err)
			_ = resp.Body.Close()
			require.Equal(t, tt.statusCode, resp.StatusCode)
		})
	}
}

func TestNewHealthServer_Disabled(t *testing.T) {
	require.Nil(t, NewHealthServer(&config.Options{}, nil, nil))
}
