// Package notifications formats search results and delivers them.
//
// Formatter builds a transport-neutral Payload (title, markdown description,
// color, images). Each Transport (Discord webhook, Apprise relay, Pushover,
// ntfy) renders that payload in its own wire format, and Dispatcher fans a
// payload out to every enabled transport under a per-transport timeout so a
// failing channel never blocks the others.
package notifications
