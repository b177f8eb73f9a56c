// Package main is davall's dispatch shell: it selects and constructs a
// backend from a file extension or an explicit type tag, binds it to
// the WebDAV frontend, and runs the HTTP listener, releasing the
// backend on every exit path.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:]))
}
