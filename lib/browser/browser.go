// Package browser abstracts the page-loading substrate the scrapers are
// written against: navigate to a URL, query the resulting DOM, read
// attributes and text. Scrapers never talk to a particular engine directly,
// which keeps them testable against canned documents.
package browser

import "context"

// Node is one element of a loaded document.
type Node interface {
	// QueryAll returns every descendant matching the CSS selector, in
	// document order.
	QueryAll(selector string) []Node
	// Query returns the first descendant matching the CSS selector, or nil.
	Query(selector string) Node
	// Attr returns the value of an attribute and whether it exists.
	Attr(name string) (string, bool)
	// Text returns the concatenated text content of the node.
	Text() string
}

// Document is the root node of a loaded page.
type Document interface {
	Node
}

// Session loads pages. Implementations own whatever connection, cookie and
// anti-bot state the underlying engine needs.
type Session interface {
	Navigate(ctx context.Context, url string) (Document, error)
	Close() error
}
