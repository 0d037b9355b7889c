/*
Package metrics defines the Prometheus metrics recorded by orkactl.

orkactl is a short-lived process, so nothing is served over HTTP. All series
live in a dedicated Registry and can be dumped once on exit with
WriteTextfile, in the format read by the node exporter textfile collector:

	orkactl --metrics-textfile /var/lib/node_exporter/orka.prom validate -f web.yaml

# Metrics

Validation:
  - orka_validations_total{kind,result}: documents checked, where result is
    "ok" or the error kind (for example "OutsidePortRange")
  - orka_validation_duration_seconds: time spent in the validation pipeline

API:
  - orka_api_requests_total{method,endpoint,status}: requests sent to the orka
    API; status is the HTTP code or "error" when no response arrived
  - orka_api_request_duration_seconds{method,endpoint}: request latency

# Timing

Timer measures an operation and feeds a histogram:

	timer := metrics.NewTimer()
	tree, err := workload.ValidateFile(path)
	timer.ObserveDuration(metrics.ValidationDuration)
*/
package metrics
