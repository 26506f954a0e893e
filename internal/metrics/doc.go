// Package metrics records build and stage metrics for sitebuilder.
//
// Components receive a Recorder. NoopRecorder is the default and does
// nothing; PrometheusRecorder registers collectors on a registry that the CLI
// can export with WriteTextfile after a build.
package metrics
