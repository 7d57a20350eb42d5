// Package catalog provides an HTTP client for the movie catalog API.
//
// # Endpoints
//
// FetchCatalog issues one of two read-only requests:
//
//   - GET {base}/discover/movie?sort_by=popularity.desc when the query is empty
//   - GET {base}/search/movie?query={escaped} otherwise
//
// Every request carries a bearer token, Accept: application/json and a
// User-Agent of marquee/0.1. Only the first page of results is read.
//
// # Errors
//
// Two failure kinds are distinguished:
//
//   - *TransportError: network failure, non-2xx status, or a body that is not JSON
//   - *DomainError: a 2xx body with Response "False"; Message carries the server's
//     Error field or DefaultDomainMessage
//
// UserMessage turns either into the text the UI shows. Nothing is retried.
//
// # Usage
//
//	client, err := catalog.New(catalog.Options{Token: cfg.APIToken})
//	if err != nil {
//		return err
//	}
//	movies, err := client.FetchCatalog(ctx, "dune")
package catalog
