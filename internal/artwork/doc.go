// Package artwork finds cover art for a search term on SteamGridDB and falls
// back to a configured placeholder when the lookup fails for any reason.
package artwork
