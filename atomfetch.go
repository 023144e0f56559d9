// Package atomfetch exposes the client builder.
package atomfetch

import (
	"github.com/atomfetch/atomfetch/client"
)

// NewClient instantiates a new *Client with the provided options.
// If not specified, the default http.Client and http.Transport are used.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}
