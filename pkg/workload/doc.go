/*
Package workload validates and normalizes orka workload documents.

A workload document is a YAML file that describes one deployable unit, either
a container or a network:

	version: "1"
	workload:
	  kind: container
	  port: 8080
	  name: web
	  image: nginx
	  environment: [B=2, A=1]

The package turns such a file into a canonical tree that the HTTP client posts
to the orka API as the request body. It performs no I/O besides ReadDocument,
keeps no state and never logs, so it can be called from any number of
goroutines at once.

# Pipeline

	raw bytes ──► Parse ──► Document ──► Validate ──► Canonical ──► *Tree
	                │                       │
	                └── MalformedDocument   └── InvalidIpAddress
	                                            OutsidePortRange
	                                            InvalidPortFormat

Parse reads the workload kind first and decodes the matching variant. An
unknown or missing kind fails immediately; there is no default variant.
Decoding also applies the field normalizers:

  - port is decoded as a uint32 and stored as its decimal string
  - environment, network and allowService are sorted and deduplicated
  - registry defaults to Docker, mask defaults to 32 and must be in [0, 32]
  - name and image must not be empty

Network workloads are then checked rule by rule, egress before ingress, in
document order. For each address the IP literal is checked before its ports
and the first violation is returned.

IP literals are only checked syntactically: four dot-separated groups of one
to three digits. 999.999.999.999 is accepted.

# Canonical Tree

The tree keeps field insertion order, uses the serialized field names and
spells the discriminator in its output form (Container, Network):

	{"version":"1","workload":{"kind":"Container","port":"8080","name":"web",
	 "environment":["A=1","B=2"],"network":[],"registry":"Docker","image":"nginx"}}

# Errors

Every error returned by the package is an *Error. Use errors.Is with the
sentinels to branch on the kind:

	tree, err := workload.ValidateFile(path)
	if errors.Is(err, workload.ErrDocumentNotFound) {
		// ...
	}
*/
package workload
