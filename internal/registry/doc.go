// Package registry assembles the set of catalog tabs at startup and saves
// them back.
//
// # Tabs file
//
// The tabs file is plain text: a positive count on the first line, then
// one "<display name> <filename>" line per tab. The filename is the last
// token, so names may contain spaces:
//
//	3
//	CD cd_catalog.json
//	Vinyl vinyl_catalog.json
//	Rare Pressings rare.json
//
// A missing file is created with DefaultTabSpecs; a malformed one is left
// alone and the defaults are used for the session.
//
// # Startup and shutdown
//
//	tabs, loadErr := registry.BuildTabs(settings.TabsPath(), settings.DataDir, logger)
//	if loadErr != nil {
//	    // show to the user; tabs are still usable
//	}
//	...
//	ok, err := registry.SaveAll(tabs)
package registry
