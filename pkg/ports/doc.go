/*
Package ports defines the driven ports (interfaces) of the adventure engine.

These interfaces decouple the core logic from external implementations, so
the engine runs on any key/value backend.

# Key Interfaces

  - Cache: string get/set/remove backend (memory, Redis, SQLite).
  - SessionStore: persists one adventure tree per user.
  - DistributedLocker: serializes a user's moves across instances.

Adapters verify themselves with RunCacheContract and RunSessionStoreContract.
*/
package ports
