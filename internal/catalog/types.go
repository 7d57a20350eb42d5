package catalog

import (
	"strings"
)

// ListResponse mirrors the discover and search payloads. Response and Error
// are only present when the API reports a failure inside a 2xx body.
type ListResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Response     string  `json:"Response,omitempty"`
	Error        string  `json:"Error,omitempty"`
}

func (r ListResponse) failed() bool {
	return strings.EqualFold(strings.TrimSpace(r.Response), "false")
}

// Movie is a catalog record as returned by the API.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	PosterPath       string  `json:"poster_path"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
	VoteAverage      float64 `json:"vote_average"`
}

// Year returns the release year or "N/A".
func (m Movie) Year() string {
	date := strings.TrimSpace(m.ReleaseDate)
	if len(date) < 4 {
		return "N/A"
	}
	return date[:4]
}

// PosterURL joins the poster path onto imageBase. Empty when the movie has no poster.
func (m Movie) PosterURL(imageBase string) string {
	path := strings.TrimSpace(m.PosterPath)
	if path == "" {
		return ""
	}
	return strings.TrimRight(imageBase, "/") + "/" + strings.TrimLeft(path, "/")
}
