// Package logo fetches HMM logos from a Skylign-compatible service.
//
// A logo is made in two steps. [Client.Submit] uploads an HMM and returns a
// [Job] naming the logo on the service; [Client.Fetch] downloads the logo as
// a PNG image or as JSON data. [Client.Logo] does both and caches the result
// by the hash of the HMM:
//
//	c := logo.NewClient(logo.WithCache(fc), logo.WithLogger(logger))
//	hmm, err := c.Pfam(ctx, "PF00400")
//	png, err := c.Logo(ctx, hmm, logo.SubmitOptions{}, logo.FormatPNG)
//
// HMMs can be read from a file, or given inline as HMMER text, with
// [ReadHMM].
//
// Non-2xx responses fail with NETWORK_ERROR (NOT_FOUND for 404) and are
// retried with backoff when the status is 5xx or 429. A response carrying
// an "error" field fails with LOGO_SERVICE and is not retried.
package logo
