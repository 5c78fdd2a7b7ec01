// Package manifest builds the precache manifest the offline service worker
// consumes: the fixed core assets plus every activity page in the catalog.
package manifest

import "fractionsarcade/internal/catalog"

// CoreAssets are the app shell files cached for every version.
var CoreAssets = []string{
	"./",
	"index.html",
	"settings.html",
	"manifest.webmanifest",
	"assets/css/arcade.css",
	"assets/css/mission.css",
	"assets/js/fractions_games.js",
	"assets/js/fractions_app.js",
	"assets/icons/apple-touch-icon.png",
	"assets/icons/favicon.png",
	"assets/icons/icon-192.png",
	"assets/icons/icon-512.png",
}

// Manifest is the JSON document served to the service worker.
type Manifest struct {
	Version   string   `json:"version"`
	CacheName string   `json:"cacheName"`
	Assets    []string `json:"assets"`
}

// Build assembles the manifest for a cache version. Asset order is stable:
// core assets first, then activity pages in catalog display order.
func Build(version string, registry *catalog.Registry) Manifest {
	assets := make([]string, 0, len(CoreAssets)+len(registry.Pages()))
	assets = append(assets, CoreAssets...)
	assets = append(assets, registry.Pages()...)

	return Manifest{
		Version:   version,
		CacheName: "fractions-arcade-" + version,
		Assets:    assets,
	}
}
