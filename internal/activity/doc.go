// Package activity stores the non-secret vault activity journal in SQLite.
//
// Each row records a lifecycle event (created, unlocked, saved...) with the
// vault path, a short detail string and a timestamp. Item titles, usernames
// and passwords are never written here. The schema lives in
// internal/migrations and is applied with goose when the database is opened.
package activity
