// Package app assembles the tradestats HTTP service.
//
// NewApplication wires configuration, logging, OpenTelemetry, the analysis
// pipeline, the services and the chi router. Run serves until the context
// is cancelled or the process is signalled, then shuts the server down and
// flushes telemetry.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
package app
