// Package client contains the remote side of the legacyvault client core.
//
// # Overview
//
// The package provides:
//  1. AuthClient, a stateless wrapper over the REST auth API
//     (register, login, forgot-password, verify-otp, reset-password-with-otp).
//  2. The DataClient contract for the BaaS data API and two implementations:
//     RESTDataClient (PostgREST over HTTP) and PostgresDataClient (pgx).
//  3. MediaResolver, which presigns S3 object references found in messages.
//  4. Device database bootstrap (InitDatabase, RunMigrations): SQLite plus
//     embedded goose migrations, used by the credential store.
//
// # Error Handling
//
// Every failure leaving AuthClient or a DataClient is an *Error with a Kind
// (transport, business, not found, unauthorized, decode) and a message that
// can be shown to the user. Callers never need to know which backend failed.
// The sentinels ErrUnavailable, ErrUnauthorized and ErrNotFound match the
// corresponding kinds with errors.Is.
//
// No call is retried and nothing is cached; each call is one round trip.
package client
