/*
Package cli provides helpers shared by the safetube-cleanup commands.

Errors:

ConfigError and CommandError wrap failures with the field or command they
belong to. ExitCode maps them to the process exit status: 0 on success, 2 for
configuration errors and 1 for everything else.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
	// A running pass observes ctx and rolls back when it is cancelled
*/
package cli
