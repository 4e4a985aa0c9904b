/*
Package ports defines the driven ports (interfaces) of the stage duplicator.

These interfaces decouple the core logic from external implementations, allowing
the duplicator to work with any scene graph backend and any snapshot store.

# Key Interfaces

  - Stage / Prim / XformOp: the scene graph API surface the core consumes.
  - StageStore: persists stage snapshots (memory, file, Redis, SQLite).
  - StageLoader: builds a snapshot from an external document source.
  - DistributedLocker: serialises runs on a shared stage across replicas.
*/
package ports
