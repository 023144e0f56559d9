// Package client provides the core implementation of the configurable HTTP
// client built on [net/http], with atomic file downloads.
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//	)
//
// # Making Requests
//
// Construct a [URL] and [Request], then execute with [Client.Do]:
//
//	u := client.URL("https", "api.example.com", "/v1/resource")
//	req, err := client.Request(ctx, u, http.MethodGet)
//	err = c.Do(req, http.StatusOK, client.WithDestination(&result))
//
// # Downloading Files
//
// Stream a response body to disk; the destination path is installed
// with a single atomic rename and is never observable half-written:
//
//	err = c.Download(req, http.StatusOK, "/tmp/file.bin",
//		client.WithProgress(),
//	)
//
// # Async Downloads
//
// A single file can be downloaded asynchronously with [Client.DownloadAsync]:
//
//	r, err := c.DownloadAsync(req, http.StatusOK, "/tmp/file.bin")
//	// ... do other work ...
//	if err := r.Err(); err != nil { ... }
//
// For multiple concurrent downloads, use [WithBatch] to set a concurrency
// limit and [download.Result.Add] to enqueue additional files:
//
//	r, err := c.DownloadAsync(req1, http.StatusOK, "/tmp/a.bin",
//		client.WithBatch(4),
//	)
//	r.Add(req2, http.StatusOK, "/tmp/b.bin")
//	r.Add(req3, http.StatusOK, "/tmp/c.bin")
//	err = r.Wait() // blocks until all downloads finish
//
// [Client.DownloadAll] accepts a validated [download.Manifest] of
// URL/path pairs and fetches every entry.
//
// For lower-level control see the
// [github.com/atomfetch/atomfetch/client/download] package.
package client
