// Package assess implements the HIV risk-assessment engine: weighted
// questionnaire scoring with thermal-scan integration, risk-level and
// urgency classification, personalized recommendations, and trend
// analysis over a session's stored assessment history.
//
// The package is a pure consumer of internal/record values; it never
// touches storage itself. Callers persist results through
// internal/store.
package assess
