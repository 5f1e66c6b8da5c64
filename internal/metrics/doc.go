// Package metrics records compile-run metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics can be
// switched on without nil checks at call sites:
//
//	c := compiler.New(cfg) // NoopRecorder
//	c = c.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// A PrometheusRecorder registers its collectors on the given registry; the CLI
// exports that registry once per run with WriteTextfile so node_exporter's
// textfile collector can pick it up.
package metrics
