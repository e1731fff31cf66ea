/*
Copyright 2026 the ServeRest API Test Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http/httptest"
	"os"
	"time"

	"github.com/spf13/pflag"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"

	"github.com/serverest-qa/api-tests/test/api"
	"github.com/serverest-qa/api-tests/test/api/fake"
)

const application = "serverest-smoke"

type options struct {
	baseURL string
	fake    bool
	seed    uint64
	keep    bool
	timeout time.Duration
}

func (o *options) addFlags(f *pflag.FlagSet) {
	f.StringVar(&o.baseURL, "base-url", os.Getenv("API_BASE_URL"), "Root URL of the API under test.")
	f.BoolVar(&o.fake, "fake", false, "Run against an in-process fake instead of --base-url.")
	f.Uint64Var(&o.seed, "seed", 0, "Seed for generated test data, 0 picks a random one.")
	f.BoolVar(&o.keep, "keep", false, "Leave the created user and product in place.")
	f.DurationVar(&o.timeout, "timeout", time.Minute, "Deadline for the whole run.")
}

func main() {
	var o options

	o.addFlags(pflag.CommandLine)

	zapOptions := zap.Options{}

	goflags := flag.NewFlagSet(application, flag.ExitOnError)
	zapOptions.BindFlags(goflags)
	pflag.CommandLine.AddGoFlagSet(goflags)

	pflag.Parse()

	log.SetLogger(zap.New(zap.UseFlagOptions(&zapOptions)))

	logger := log.Log.WithName(application)

	ctx, cancel := context.WithTimeout(signals.SetupSignalHandler(), o.timeout)
	defer cancel()

	if err := run(ctx, &o); err != nil {
		logger.Error(err, "smoke run failed")
		cancel()
		os.Exit(1) //nolint:gocritic // cancel is called explicitly above
	}

	logger.Info("smoke run succeeded")
}

func run(ctx context.Context, o *options) error {
	logger := log.Log.WithName(application)

	config := api.DefaultTestConfig(o.baseURL)
	config.Seed = o.seed
	config.SkipCleanup = o.keep

	if o.fake {
		server, err := fake.New(fake.WithLogger(logger.WithName("fake")))
		if err != nil {
			return err
		}

		srv := httptest.NewServer(server)
		defer srv.Close()

		config.BaseURL = srv.URL
	}

	if config.BaseURL == "" {
		return fmt.Errorf("%w: one of --base-url or --fake is required", api.ErrInvalidConfig)
	}

	client, err := api.NewAPIClientWithConfig(config, api.WithLogger(logger.WithName("client")))
	if err != nil {
		return err
	}

	return newSmoke(client, logger).run(ctx, o.keep)
}
