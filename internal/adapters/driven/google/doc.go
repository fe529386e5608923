// Package google provides calendar and mail adapters backed by the
// Google Calendar and Gmail APIs. All requests go through per-service
// rate limiters with conservative defaults.
package google
