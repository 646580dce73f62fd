// Package bootstrap runs a calabi binary: it applies and validates config,
// installs the logger, starts registered components in order, runs a task
// until it returns or a signal arrives, then shuts everything down in
// reverse.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(manifoldComponent)
//	app.OnStop(func(ctx context.Context) error { ... })
//	err = app.RunTask(ctx, b.Run)
package bootstrap
