// Package store persists catalogs as JSON files.
//
// A catalog file is a UTF-8 JSON object mapping artist names to arrays of
// album titles, indented with four spaces, with keys in the catalog's
// iteration order:
//
//	{
//	    "Queen": [
//	        "A Night at the Opera"
//	    ],
//	    "Кино": [
//	        "Группа крови"
//	    ]
//	}
//
// Load treats a missing file as an empty catalog. Save replaces the file
// atomically and leaves nothing else in the directory. Failures wrap ErrIO or ErrFormat so
// callers can decide whether to substitute an empty catalog.
package store
