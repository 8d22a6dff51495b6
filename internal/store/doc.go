// Package store provides SQLite-backed durable storage for thermoscreen.
//
// Five tables back the health self-assessment flow:
//   - assessments: encrypted risk-assessment records (append-only)
//   - thermal_analyses: fever scan results (append-only)
//   - thermal_calibrations: per-session sensor calibration history
//     (append-only, with an active flag)
//   - user_sessions: anonymous correlation sessions (the only table with
//     update semantics: activity heartbeat, counters, bulk expiry)
//   - testing_centers: reference/lookup data outside the session flow
//
// # Invariants
//
//   - Row ids are strictly increasing within a table and never reused
//     (AUTOINCREMENT).
//   - The current calibration for a session is the active row with the
//     greatest created_at; ties break to the highest id.
//   - Sessions move Active -> Inactive only via ExpireSessions and never
//     come back; no row is ever deleted.
//   - session_id columns are soft foreign keys by value: no referential
//     constraint, orphaned rows are permitted.
//   - Every write commits before its method returns; there is no
//     buffering and no partial row on failure.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: The schema declares no constraints today; the
//     pragma keeps any future ones enforced
//
// Opaque payloads (ciphertext, raw sensor frames, preferences) pass
// through unmodified; their encoding lives in internal/record.
package store
