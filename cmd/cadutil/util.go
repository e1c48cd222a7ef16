package main

import (
	"log"
	"os"
)

// exitWithError logs err with the standard logger and exits 1. This
// is the only place this command ever logs: the cadutil library
// packages are silent, the same split the teacher draws between its
// core and demo/server/main.go.
func exitWithError(err error) {
	log.SetFlags(0)
	log.SetPrefix("cadutil: ")
	log.Println(err)
	os.Exit(1)
}
