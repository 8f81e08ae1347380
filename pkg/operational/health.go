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
	"net"
	"net/http"

	"github.com/heptiolabs/healthcheck"
	"github.com/netobserv/vibration-gcn/pkg/config"
	log "github.com/sirupsen/logrus"
)

const defaultServerHost = "0.0.0.0"

// NewHealthServer exposes liveness and readiness checks; it returns nil when no health port is configured.
func NewHealthServer(opts *config.Options, isAlive healthcheck.Check, isReady healthcheck.Check) *http.Server {
	if opts.Health.Port == "" {
		return nil
	}
	handler := healthcheck.NewHandler()
	address := net.JoinHostPort(defaultServerHost, opts.Health.Port)
	if opts.Health.Address != "" {
		address = net.JoinHostPort(opts.Health.Address, opts.Health.Port)
	}

	handler.AddLivenessCheck("PipelineCheck", isAlive)
	handler.AddReadinessCheck("PipelineCheck", isReady)

	server := &http.Server{
		Addr:    address,
		Handler: handler,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("http.ListenAndServe error %v", err)
		}
	}()

	return server
}
