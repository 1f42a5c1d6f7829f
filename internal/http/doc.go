// Package http exposes the read API for composed site views.
//
// Routes mount under /api by default:
//   - GET /sites/{scope}/view        composed view (?page=, ?slug=, ?builtin=, ?collection=)
//   - GET /sites/{scope}/navigation  navigation tree of the same view
//   - GET /sites/{scope}/pages       pages of the scope visible to the viewer
//
// {scope} is a scope key such as "global", "store:7" or "entity:restaurant:42".
// Host applications can mount Handler() on their own router.
package http
