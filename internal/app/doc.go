// Package app wires the flowbricks components into one service: catalog
// loading and caching, region analysis, matching, plan resolution and plan
// emission. It is decoupled from any specific entrypoint like a CLI or server.
package app
