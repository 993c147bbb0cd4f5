// Package fileutil holds the filesystem rules shared by the traversal: how a
// server-side media path maps onto the local filesystem, how an artwork file
// name is chosen under each naming mode, and how artwork bytes are written in
// place without ever leaving a partial file behind.
package fileutil
