// Package pages loads page documents by name from a directory or an S3
// bucket.
//
// A page name is a slash-separated path without extension, such as
// "index" or "guides/setup". Stores look for name.yaml, name.yml and
// name.json, in that order.
package pages
