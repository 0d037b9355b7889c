/*
Package client provides an HTTP client for the orka API.

The orka API takes and returns JSON. Workloads are validated locally by the
workload package and posted as their canonical tree:

	tree, err := workload.ValidateFile("web.yaml")
	if err != nil {
		return err
	}

	c := client.New(cfg.OrkaURL)
	resp, err := c.CreateWorkload(ctx, tree)

Endpoints, relative to the configured base URL:

	POST   workloads          CreateWorkload
	POST   instance           CreateInstance
	GET    workload[/<id>]    GetWorkload
	GET    instance[/<id>]    GetInstance
	DELETE workload/<id>      DeleteWorkload
	DELETE instance/<id>      DeleteInstance

Every request carries a fresh X-Request-ID, is bounded by the client timeout
(10s by default) and is recorded in the orka_api_* metrics. Requests are not
retried.

Non-2xx responses are returned as *APIError. When the error body is JSON its
status and message fields are copied onto the error. A 2xx response that is
not JSON yields ErrMalformedResponse.
*/
package client
