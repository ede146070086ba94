// Package server exposes a live sheet over HTTP.
//
// Routes:
//
//	GET  /cells         snapshot of every cell and formula
//	GET  /cells/{name}  one value with its kind
//	PUT  /cells/{name}  write a cell, body {"value": n}
//	GET  /ws            change stream
//	GET  /metrics       Prometheus exposition
//	GET  /healthz       liveness
//
// Every write to a sheet cell, whether it arrives over HTTP or from other
// code holding the same sheet, is pushed to websocket clients as
//
//	{"type": "write", "name": "a", "values": {"a": 10, "total": 13}}
//
// Writes are observed through reactive.Graph.Watch, so the snapshot is
// taken after invalidation has finished and formulas recompute on demand.
package server
