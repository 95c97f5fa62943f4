// Package libdaybook is a client library for Daybook record servers.
package libdaybook
