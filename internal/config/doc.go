// Package config loads marquee's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/marquee/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing, empty or non-positive, use defaults
//
// # Default Values
//
//   - Catalog API: https://api.themoviedb.org/3
//   - Poster images: https://image.tmdb.org/t/p/w500
//   - Data directory: ~/.local/share/marquee (trends.db, marquee.log)
//   - Trending entries shown: 5
//   - Search debounce: 300ms
//   - Request timeout: 10s
//
// # TOML Format
//
//	api_base_url = "https://api.themoviedb.org/3"
//	image_base_url = "https://image.tmdb.org/t/p/w500"
//	data_dir = "~/.local/share/marquee"
//	trending_limit = 5
//	debounce_ms = 300
//	request_timeout_seconds = 10
//
// # Secrets
//
// The catalog bearer token is read only from the TMDB_API_TOKEN environment
// variable, never from the file. A missing token is not rejected here; the
// catalog API answers 401 and the UI shows its generic fetch error.
package config
