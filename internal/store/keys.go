package store

import "strings"

// DefaultNamespace prefixes every key written by the application.
const DefaultNamespace = "komorebi"

// Namespace builds the application's key names.
type Namespace string

// NS returns ns, or the default namespace when ns is empty.
func NS(ns string) Namespace {
	if strings.TrimSpace(ns) == "" {
		return DefaultNamespace
	}
	return Namespace(ns)
}

// Prefix is the common prefix of all keys in the namespace.
func (n Namespace) Prefix() string { return string(n) + "_" }

// Config is the configuration key.
func (n Namespace) Config() string { return string(n) + "_config_v1" }

// APIKey is the assistant credential key.
func (n Namespace) APIKey() string { return string(n) + "_gemini_key" }

// DayPrefix is the prefix shared by all day record keys.
func (n Namespace) DayPrefix() string { return string(n) + "_day_" }

// Day is the record key for an ISO date.
func (n Namespace) Day(date string) string { return n.DayPrefix() + date }

// DateFromKey extracts the date from a day key.
func (n Namespace) DateFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, n.DayPrefix()) {
		return "", false
	}
	date := strings.TrimPrefix(key, n.DayPrefix())
	return date, date != ""
}
