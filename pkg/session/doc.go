/*
Package session serializes access to per-user adventure trees.

Every read-modify-write cycle on a user's tree runs under that user's lock:
an in-process mutex, plus an optional distributed lock when several replicas
share one cache. Different users never contend.
*/
package session
