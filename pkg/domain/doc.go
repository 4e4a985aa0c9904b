/*
Package domain contains the core domain models of the stage duplicator.

It defines prim paths, the duplicate request, per-copy outcomes and the
serialisable stage snapshot. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Path: slash-delimited prim address ("/World/Box"), with "/" as pseudo-root.
  - Request: count, distance, axis and instance flag of one trigger.
  - Attempt: tagged outcome of one duplicate (Created/CreationFailed, TransformApplied/TransformFailed).
  - Result: success counter plus the status string returned to the host.
  - StageSnapshot: the stage as plain data, used by every store and file format.
*/
package domain
