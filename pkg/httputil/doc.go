// Package httputil holds the HTTP plumbing shared by the logo client.
//
//   - [Retry]: retries transient failures with exponential backoff
//   - [CheckStatus]: maps response status codes to coded errors
//   - [Client]: an instrumented HTTP client reporting to observability hooks
//
// Only errors wrapped in [RetryableError] are retried. [CheckStatus] wraps
// 5xx and 429 responses that way, so a request function built from
// [Client.Do] and [CheckStatus] retries exactly the transient failures.
package httputil
