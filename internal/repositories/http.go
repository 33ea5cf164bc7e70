package repositories

import "net/http"

// HTTPClient is satisfied by *http.Client and by test doubles.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
