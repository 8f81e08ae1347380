/*
 * Copyright (C) 2023 IBM, Inc.
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

package prometheus

import (
	"fmt"
	"net/http"
	"os"

	"github.com/netobserv/vibration-gcn/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var plog = log.WithField("component", "prometheus")

// InitializePrometheus starts the operational metrics server; it returns nil when no port is configured.
func InitializePrometheus(settings *config.MetricsSettings) *http.Server {
	if settings.Port == 0 {
		plog.Debug("metrics port not set, operational metrics are not exposed")
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%v", settings.Address, settings.Port),
		Handler:        mux,
		MaxHeaderBytes: 1 << 20,
	}

	go startServer(settings, server)
	return server
}

func startServer(settings *config.MetricsSettings, server *http.Server) {
	plog.Infof("Prometheus server: addr = %s", server.Addr)
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		plog.Errorf("error in http.ListenAndServe: %v", err)
		if !settings.NoPanic {
			os.Exit(1)
		}
	}
}
