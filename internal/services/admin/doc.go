// Package admin implements the Decor IMIC content console.
//
// It serves the public landing and login pages, guards the /admin screens
// with an operator session, and translates form submissions into calls
// against the remote content API.
package admin
