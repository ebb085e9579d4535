// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor provides process supervision for Marquee using suture v4.

Long-running services are organized into two layers so that a failure in
one does not restart the other:

	marquee
	├── data-layer
	│   └── corpus-warmup   (one-shot, if RECOMMEND_WARMUP_ON_STARTUP)
	└── api-layer
	    └── http-server

Crashed services are restarted with backoff once FailureThreshold failures
accumulate within the decay window. Supervisor events are logged through
sutureslog, which in turn writes to zerolog via logging.NewSlogLogger.

# Usage

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddDataService(services.NewWarmupService(session, timeout))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, timeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

After Serve returns, UnstoppedServiceReport lists services that ignored the
shutdown timeout.
*/
package supervisor
