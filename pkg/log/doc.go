/*
Package log provides structured logging for orkactl using zerolog.

The package wraps a single global zerolog.Logger. orkactl writes its command
output (canonical documents, API responses) to stdout, so logs default to
stderr and can be switched between a human console format and JSON lines.

# Usage

Initializing the Logger:

	log.Init(log.Config{
		Level:      log.ParseLevel(levelFlag),
		JSONOutput: jsonFlag,
	})

Component Loggers:

	clientLog := log.WithComponent("client")
	clientLog.Debug().Str("url", url).Msg("Sending request")

Context Logger Helpers:

	reqLog := log.WithRequestID(id)
	reqLog.Debug().Int("status", resp.StatusCode).Msg("Received response")

	log.WithWorkloadKind("Network").Info().Msg("Workload validated")

The workload package never logs. Validation failures are returned as errors
and reported by the CLI.
*/
package log
