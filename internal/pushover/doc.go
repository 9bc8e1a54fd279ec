// Package pushover sends push notifications through the Pushover message
// API.
//
// The client is a thin form-POST wrapper around the messages endpoint; the
// formatter renders a resolved schedule assignment as the HTML message body
// used by watch mode.
package pushover
