// Package record defines the row types persisted by the thermoscreen
// store: encrypted assessments, thermal analyses, anonymous user
// sessions, thermal calibrations, and testing-center reference data.
//
// Opaque payloads (encrypted_data, user_preferences, raw sensor data)
// are carried as uninterpreted bytes or text. This package only handles
// their (de)serialization, never their meaning.
package record
