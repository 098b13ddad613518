// Package session holds the browser-facing request state of the HTML catalog:
// scs-backed sessions carrying one-shot flash messages, gorilla/csrf form
// protection, and security response headers.
//
// None of it applies to the JSON API, which is stateless.
package session
