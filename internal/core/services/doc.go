// Package services implements the core use cases behind the driving
// ports: document ingestion and retrieval, intent classification and
// dispatch, and the four request handlers. Services depend only on the
// domain package and the driven ports.
package services
