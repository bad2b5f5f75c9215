// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs the long-lived parts of the marquee server under a
suture v4 supervisor tree.

	marquee
	├── store-layer
	│   ├── SessionWarmupService
	│   └── BadgerGCService (Badger backend only)
	└── api-layer
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Events are logged
through sutureslog into the zerolog-backed slog logger from the logging
package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddStoreService(services.NewSessionWarmupService(gw))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	return tree.Serve(ctx)

See the services subpackage for the service wrappers.
*/
package supervisor
