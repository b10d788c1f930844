// Package startup handles process bootstrap: environment-driven
// configuration with logged defaults, build information injected at link
// time, and the log helpers main uses during startup and graceful
// shutdown.
package startup
