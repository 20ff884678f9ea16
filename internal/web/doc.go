// Package web is the browser front end for groupzip.
//
// GET / shows a form asking for a directory path. POST / runs the archiver on
// that directory with the server's configured options and redirects to
// /success, which lists the archives produced by the session's last run.
// Sessions are identified by a random UUID cookie and held in memory only.
package web
