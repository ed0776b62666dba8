// Package i18n resolves the operator's language for each request and exposes
// the translation table and text direction to handlers and templates.
package i18n
