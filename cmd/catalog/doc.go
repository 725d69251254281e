// Command catalog manages record catalogs from the command line.
//
// Every command works on one tab, chosen with --tab (the first configured
// tab by default). Commands that change a catalog save it before exiting.
//
//	catalog add "Queen" "A Night at the Opera"
//	catalog --tab Vinyl list
//	catalog remove 3
//	catalog export --format yaml
//	catalog tui
package main
