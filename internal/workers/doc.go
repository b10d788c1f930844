// Package workers sizes worker pools for containerized environments.
//
// runtime.NumCPU reports the host CPU count even when a cgroup limit caps
// the process at far fewer cores; GOMAXPROCS reflects the actual limit on
// Go 1.19+. The helpers here derive pool sizes from GOMAXPROCS with a
// per-workload multiplier and an upper cap, so the thumbnail extraction
// pool never spawns dozens of ffmpeg processes on a 2-core pod scheduled
// onto a 64-core node.
//
// Operators can force a specific size with the THUMBNAIL_WORKERS
// environment variable.
package workers
