package httpx

import "net/http"

// Client is the transport used by outbound adapters.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}
